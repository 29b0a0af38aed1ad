// Package command provides the duel console's command registry, parser, and
// built-in command definitions.
package command

// Categories for organizing commands in help output.
const (
	CategoryRoster = "roster"
	CategoryCombat = "combat"
	CategorySystem = "system"
)

// Handler identifiers dispatched by the duel console.
const (
	HandlerPlayers = "players"
	HandlerEnemies = "enemies"
	HandlerPlayer  = "player"
	HandlerEnemy   = "enemy"
	HandlerAttack  = "attack"
	HandlerStatus  = "status"
	HandlerLog     = "log"
	HandlerReset   = "reset"
	HandlerHelp    = "help"
	HandlerQuit    = "quit"
)

// Command defines a console command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Usage shows the argument form, e.g. "player <name|#>".
	Usage string
	// Help is the short help text.
	Help string
	// Category groups the command in help output.
	Category string
	// Handler names the console operation the command dispatches to.
	Handler string
	// MinArgs is the number of arguments the command requires.
	MinArgs int
}

// BuiltinCommands returns the duel console commands.
func BuiltinCommands() []Command {
	return []Command{
		{Name: "players", Aliases: []string{"pl"}, Usage: "players", Help: "List selectable player profiles", Category: CategoryRoster, Handler: HandlerPlayers},
		{Name: "enemies", Aliases: []string{"en"}, Usage: "enemies", Help: "List selectable enemy profiles", Category: CategoryRoster, Handler: HandlerEnemies},
		{Name: "player", Aliases: nil, Usage: "player <name|#>", Help: "Choose the player profile", Category: CategoryRoster, Handler: HandlerPlayer, MinArgs: 1},
		{Name: "enemy", Aliases: nil, Usage: "enemy <name|#>", Help: "Choose the enemy profile", Category: CategoryRoster, Handler: HandlerEnemy, MinArgs: 1},

		{Name: "attack", Aliases: []string{"a", "att"}, Usage: "attack", Help: "Fight one round", Category: CategoryCombat, Handler: HandlerAttack},
		{Name: "status", Aliases: []string{"st"}, Usage: "status", Help: "Show both combatants' wounds", Category: CategoryCombat, Handler: HandlerStatus},
		{Name: "log", Aliases: nil, Usage: "log", Help: "Replay every round of the current duel", Category: CategoryCombat, Handler: HandlerLog},
		{Name: "reset", Aliases: []string{"new"}, Usage: "reset", Help: "Start a fresh duel with the current selection", Category: CategoryCombat, Handler: HandlerReset},

		{Name: "help", Aliases: []string{"?"}, Usage: "help", Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "quit", Aliases: []string{"exit"}, Usage: "quit", Help: "Disconnect", Category: CategorySystem, Handler: HandlerQuit},
	}
}
