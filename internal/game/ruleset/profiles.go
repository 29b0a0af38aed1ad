package ruleset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadProfiles reads every .yaml file in dir as a single profile and builds
// a Roster from them. Files are read in directory order.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns a Roster (possibly empty) or a non-nil error.
func LoadProfiles(dir string) (*Roster, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	var entries []map[string]any
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var entry map[string]any
		if err := yaml.Unmarshal(data, &entry); err != nil {
			return nil, fmt.Errorf("parsing profile file %s: %w", path, err)
		}
		if entry == nil {
			continue
		}
		entries = append(entries, entry)
	}
	profiles, err := buildEntries(entries, dir)
	if err != nil {
		return nil, err
	}
	return NewRoster(profiles)
}

func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths, nil
}
