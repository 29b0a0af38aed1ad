package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/wfrp-duel/internal/game/character"
	"github.com/cory-johannsen/wfrp-duel/internal/game/ruleset"
	"github.com/cory-johannsen/wfrp-duel/internal/storage/postgres"
	"github.com/cory-johannsen/wfrp-duel/internal/testutil"
)

func setupProfileRepo(t *testing.T) *postgres.ProfileRepository {
	t.Helper()
	return postgres.NewProfileRepository(testutil.NewPool(t))
}

func gunther() *character.Profile {
	return &character.Profile{Name: "Player Gunther", Role: character.RolePlayer, WeaponSkill: 45, Wounds: 12, Strength: 4}
}

func orc() *character.Profile {
	return &character.Profile{Name: "Enemy Orc", Role: character.RoleEnemy, WeaponSkill: 35, Wounds: 10, Strength: 3}
}

func TestProfileRepository_CreateAndGet(t *testing.T) {
	repo := setupProfileRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, gunther()))

	got, err := repo.GetByName(ctx, "player gunther")
	require.NoError(t, err)
	assert.Equal(t, gunther(), got)
}

func TestProfileRepository_CreateDuplicate(t *testing.T) {
	repo := setupProfileRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, orc()))
	err := repo.Create(ctx, orc())
	assert.ErrorIs(t, err, postgres.ErrProfileExists)
}

func TestProfileRepository_CreateRejectsInvalid(t *testing.T) {
	repo := setupProfileRepo(t)
	p := orc()
	p.Wounds = 0
	err := repo.Create(context.Background(), p)
	assert.ErrorIs(t, err, character.ErrInvalidStat)
}

func TestProfileRepository_UpsertOverwrites(t *testing.T) {
	repo := setupProfileRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, orc()))
	updated := orc()
	updated.Wounds = 14
	require.NoError(t, repo.Upsert(ctx, updated))

	got, err := repo.GetByName(ctx, "Enemy Orc")
	require.NoError(t, err)
	assert.Equal(t, 14, got.Wounds)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestProfileRepository_GetMissing(t *testing.T) {
	repo := setupProfileRepo(t)
	_, err := repo.GetByName(context.Background(), "nobody")
	assert.ErrorIs(t, err, ruleset.ErrProfileNotFound)
}

func TestProfileRepository_Delete(t *testing.T) {
	repo := setupProfileRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, orc()))
	require.NoError(t, repo.Delete(ctx, "ENEMY ORC"))
	assert.ErrorIs(t, repo.Delete(ctx, "Enemy Orc"), ruleset.ErrProfileNotFound)
}

func TestProfileRepository_Roster(t *testing.T) {
	repo := setupProfileRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, gunther()))
	require.NoError(t, repo.Create(ctx, orc()))

	r, err := repo.Roster(ctx)
	require.NoError(t, err)
	require.Len(t, r.Players, 1)
	require.Len(t, r.Enemies, 1)
	assert.Equal(t, "Enemy Orc", r.Enemies[0].Name)
}
