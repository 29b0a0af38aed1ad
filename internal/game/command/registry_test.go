package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r)
	assert.Len(t, r.Commands(), len(BuiltinCommands()))
}

func TestResolve_CanonicalName(t *testing.T) {
	r := DefaultRegistry()

	cmd, ok := r.Resolve("attack")
	assert.True(t, ok)
	assert.Equal(t, "attack", cmd.Name)
	assert.Equal(t, HandlerAttack, cmd.Handler)
}

func TestResolve_Alias(t *testing.T) {
	r := DefaultRegistry()

	cmd, ok := r.Resolve("a")
	assert.True(t, ok)
	assert.Equal(t, "attack", cmd.Name)
}

func TestResolve_NotFound(t *testing.T) {
	r := DefaultRegistry()

	_, ok := r.Resolve("flee")
	assert.False(t, ok)
}

func TestResolve_AllConsoleCommands(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		input   string
		handler string
	}{
		{"players", HandlerPlayers},
		{"pl", HandlerPlayers},
		{"enemies", HandlerEnemies},
		{"en", HandlerEnemies},
		{"player", HandlerPlayer},
		{"enemy", HandlerEnemy},
		{"att", HandlerAttack},
		{"status", HandlerStatus},
		{"st", HandlerStatus},
		{"log", HandlerLog},
		{"reset", HandlerReset},
		{"new", HandlerReset},
		{"quit", HandlerQuit},
		{"exit", HandlerQuit},
		{"help", HandlerHelp},
		{"?", HandlerHelp},
	}

	for _, tt := range tests {
		cmd, ok := r.Resolve(tt.input)
		require.True(t, ok, "input %q not found", tt.input)
		assert.Equal(t, tt.handler, cmd.Handler, "input %q wrong handler", tt.input)
	}
}

func TestNewRegistry_DuplicateName(t *testing.T) {
	cmds := []Command{
		{Name: "test", Handler: "a"},
		{Name: "test", Handler: "b"},
	}
	_, err := NewRegistry(cmds)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate command name")
}

func TestNewRegistry_DuplicateAlias(t *testing.T) {
	cmds := []Command{
		{Name: "test1", Aliases: []string{"t"}, Handler: "a"},
		{Name: "test2", Aliases: []string{"t"}, Handler: "b"},
	}
	_, err := NewRegistry(cmds)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate alias")
}

func TestCommandsByCategory(t *testing.T) {
	r := DefaultRegistry()
	cats := r.CommandsByCategory()

	require.Contains(t, cats, CategoryRoster)
	require.Contains(t, cats, CategoryCombat)
	require.Contains(t, cats, CategorySystem)
	assert.Len(t, cats[CategoryRoster], 4)

	names := make([]string, 0, len(cats[CategoryRoster]))
	for _, c := range cats[CategoryRoster] {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"enemies", "enemy", "player", "players"}, names)
}

func TestMatch(t *testing.T) {
	r := DefaultRegistry()

	cmd, res, err := r.Match("player 2")
	require.NoError(t, err)
	assert.Equal(t, HandlerPlayer, cmd.Handler)
	assert.Equal(t, "2", res.RawArgs)

	cmd, _, err = r.Match("  ")
	require.NoError(t, err)
	assert.Nil(t, cmd)

	_, _, err = r.Match("dance")
	assert.ErrorIs(t, err, ErrUnknownCommand)

	cmd, _, err = r.Match("enemy")
	assert.ErrorIs(t, err, ErrUsage)
	assert.Contains(t, err.Error(), "enemy <name|#>")
	require.NotNil(t, cmd)
}

func TestPropertyAllAliasesResolveToCanonical(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := DefaultRegistry()
		cmds := r.Commands()
		idx := rapid.IntRange(0, len(cmds)-1).Draw(t, "cmd_idx")
		cmd := cmds[idx]

		resolved, ok := r.Resolve(cmd.Name)
		if !ok {
			t.Fatalf("canonical name %q did not resolve", cmd.Name)
		}
		if resolved.Name != cmd.Name {
			t.Fatalf("canonical name %q resolved to %q", cmd.Name, resolved.Name)
		}

		for _, alias := range cmd.Aliases {
			aliasResolved, ok := r.Resolve(alias)
			if !ok {
				t.Fatalf("alias %q did not resolve", alias)
			}
			if aliasResolved.Name != cmd.Name {
				t.Fatalf("alias %q resolved to %q, expected %q", alias, aliasResolved.Name, cmd.Name)
			}
		}
	})
}
