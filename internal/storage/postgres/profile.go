package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/wfrp-duel/internal/game/character"
	"github.com/cory-johannsen/wfrp-duel/internal/game/ruleset"
)

// ErrProfileExists is returned when creating a profile whose name is already stored.
var ErrProfileExists = errors.New("profile already exists")

// ProfileRepository stores duel stat blocks.
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a ProfileRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func roleColumn(r character.Role) string {
	return strings.ToLower(r.String())
}

func scanRole(s string) (character.Role, error) {
	role, ok := character.RoleForSection(s)
	if !ok {
		return 0, fmt.Errorf("unknown role %q", s)
	}
	return role, nil
}

// Create inserts a new profile.
//
// Precondition: p must pass p.Validate().
// Postcondition: Returns ErrProfileExists if the name (case-insensitive) is taken.
func (r *ProfileRepository) Create(ctx context.Context, p *character.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO profiles (name, role, weapon_skill, wounds, strength)
		VALUES ($1, $2, $3, $4, $5)`,
		p.Name, roleColumn(p.Role), p.WeaponSkill, p.Wounds, p.Strength,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("%w: %q", ErrProfileExists, p.Name)
		}
		return fmt.Errorf("inserting profile: %w", err)
	}
	return nil
}

// Upsert inserts p, or overwrites the stats of the stored profile with the same name.
//
// Precondition: p must pass p.Validate().
func (r *ProfileRepository) Upsert(ctx context.Context, p *character.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO profiles (name, role, weapon_skill, wounds, strength)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ((LOWER(name))) DO UPDATE SET
			role = EXCLUDED.role,
			weapon_skill = EXCLUDED.weapon_skill,
			wounds = EXCLUDED.wounds,
			strength = EXCLUDED.strength,
			updated_at = NOW()`,
		p.Name, roleColumn(p.Role), p.WeaponSkill, p.Wounds, p.Strength,
	)
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	return nil
}

// GetByName retrieves a profile by case-insensitive name.
//
// Postcondition: Returns the Profile or an error wrapping ruleset.ErrProfileNotFound.
func (r *ProfileRepository) GetByName(ctx context.Context, name string) (*character.Profile, error) {
	var (
		p    character.Profile
		role string
	)
	err := r.db.QueryRow(ctx, `
		SELECT name, role, weapon_skill, wounds, strength
		FROM profiles WHERE LOWER(name) = LOWER($1)`,
		name,
	).Scan(&p.Name, &role, &p.WeaponSkill, &p.Wounds, &p.Strength)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %q", ruleset.ErrProfileNotFound, name)
		}
		return nil, fmt.Errorf("querying profile: %w", err)
	}
	if p.Role, err = scanRole(role); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns every stored profile in insertion order.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *ProfileRepository) List(ctx context.Context) ([]*character.Profile, error) {
	rows, err := r.db.Query(ctx, `
		SELECT name, role, weapon_skill, wounds, strength
		FROM profiles ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]*character.Profile, 0)
	for rows.Next() {
		var (
			p    character.Profile
			role string
		)
		if err := rows.Scan(&p.Name, &role, &p.WeaponSkill, &p.Wounds, &p.Strength); err != nil {
			return nil, fmt.Errorf("scanning profile row: %w", err)
		}
		if p.Role, err = scanRole(role); err != nil {
			return nil, err
		}
		profiles = append(profiles, &p)
	}
	return profiles, rows.Err()
}

// Delete removes the profile with the given name.
//
// Postcondition: Returns an error wrapping ruleset.ErrProfileNotFound if no row was deleted.
func (r *ProfileRepository) Delete(ctx context.Context, name string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE LOWER(name) = LOWER($1)`, name)
	if err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %q", ruleset.ErrProfileNotFound, name)
	}
	return nil
}

// Roster loads every stored profile into a Roster.
func (r *ProfileRepository) Roster(ctx context.Context) (*ruleset.Roster, error) {
	profiles, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return ruleset.NewRoster(profiles)
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	// pgx wraps PostgreSQL errors; check for SQLSTATE 23505 (unique_violation)
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
