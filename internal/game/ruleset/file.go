package ruleset

import (
	"fmt"

	"github.com/spf13/viper"
)

// rosterFile is the on-disk roster layout:
//
//	profiles:
//	  - name: Player Gunther
//	    weapon_skill: 45
//	    wounds: 12
//	    strength: 4
type rosterFile struct {
	Profiles []map[string]any `mapstructure:"profiles"`
}

// LoadRoster reads a roster file in any format viper understands (YAML,
// TOML, JSON), selected by extension.
//
// Precondition: path must name a readable roster file.
// Postcondition: Returns a Roster, or an error describing every malformed
// profile. No Roster is returned from a partially valid file.
func LoadRoster(path string) (*Roster, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading roster file: %w", err)
	}
	return LoadRosterFromViper(v, path)
}

// LoadRosterFromViper builds a Roster from an already-configured Viper instance.
//
// Precondition: v must be non-nil; origin labels errors.
func LoadRosterFromViper(v *viper.Viper, origin string) (*Roster, error) {
	var rf rosterFile
	if err := v.Unmarshal(&rf); err != nil {
		return nil, fmt.Errorf("unmarshalling roster: %w", err)
	}
	profiles, err := buildEntries(rf.Profiles, origin)
	if err != nil {
		return nil, err
	}
	return NewRoster(profiles)
}
