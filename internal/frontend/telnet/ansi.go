// Package telnet provides the Telnet transport, with ANSI color support, for
// the duel console.
package telnet

import (
	"fmt"
	"regexp"
)

// ANSI escape codes used by the duel console.
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
	Magenta = "\033[35m"

	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
	BrightCyan   = "\033[96m"
	BrightWhite  = "\033[97m"
)

var ansiSeq = regexp.MustCompile("\033\\[[0-9;]*m")

// Colorize wraps text with the given ANSI color code and a reset suffix.
//
// Postcondition: Returns color + text + Reset.
func Colorize(color, text string) string {
	return color + text + Reset
}

// Colorf wraps a formatted string with the given ANSI color code.
func Colorf(color, format string, args ...any) string {
	return color + fmt.Sprintf(format, args...) + Reset
}

// StripANSI removes all SGR escape sequences, for plain-text sinks such as
// the batch CLI or a log file.
//
// Postcondition: The result contains no "\033[...m" sequences.
func StripANSI(s string) string {
	return ansiSeq.ReplaceAllString(s, "")
}
