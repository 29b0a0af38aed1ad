package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun_DecidedDuelExitsZero(t *testing.T) {
	path := writeRoster(t, `
profiles:
  - name: Player Gunther
    weapon_skill: 100
    wounds: 12
    strength: 40
  - name: Enemy Goblin
    weapon_skill: 100
    wounds: 12
    strength: 40
`)
	var stdout, stderr bytes.Buffer
	code := run([]string{"-roster", path, "-seed", "7"}, &stdout, &stderr)
	assert.Equal(t, exitOK, code, stderr.String())
	assert.Contains(t, stdout.String(), "Player Gunther faces Enemy Goblin!")
	assert.Contains(t, stdout.String(), "stands victorious")
}

func TestRun_RoundLimitExitsTwo(t *testing.T) {
	path := writeRoster(t, `
profiles:
  - name: Player Gunther
    weapon_skill: 50
    wounds: 1000
    strength: 1
  - name: Enemy Goblin
    weapon_skill: 50
    wounds: 1000
    strength: 1
`)
	var stdout, stderr bytes.Buffer
	code := run([]string{"-roster", path, "-seed", "7", "-max-rounds", "1"}, &stdout, &stderr)
	assert.Equal(t, exitRoundLimit, code)
	assert.Contains(t, stderr.String(), "round limit reached")
}

func TestRun_UnknownEnemyExitsOne(t *testing.T) {
	path := writeRoster(t, `
profiles:
  - name: Player Gunther
    weapon_skill: 50
    wounds: 12
    strength: 4
  - name: Enemy Goblin
    weapon_skill: 30
    wounds: 8
    strength: 3
`)
	var stdout, stderr bytes.Buffer
	code := run([]string{"-roster", path, "-enemy", "Dragon"}, &stdout, &stderr)
	assert.Equal(t, exitError, code)
	assert.NotContains(t, stdout.String(), "faces")
}

func TestRun_MissingRosterExitsOne(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-roster", filepath.Join(t.TempDir(), "absent.yaml")}, &stdout, &stderr)
	assert.Equal(t, exitError, code)
}

func TestRun_BadFlagExitsOne(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-rounds", "3"}, &stdout, &stderr)
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr.String(), "flag provided but not defined")
}
