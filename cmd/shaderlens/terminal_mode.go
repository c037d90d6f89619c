package main

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// terminalMode is the value of an auto|on|off flag such as --ui or --color.
type terminalMode string

const (
	modeAuto terminalMode = "auto"
	modeOn   terminalMode = "on"
	modeOff  terminalMode = "off"
)

// readTerminalMode parses the value of --flag; always and never are
// accepted for on and off.
func readTerminalMode(flag, value string) (terminalMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return modeAuto, nil
	case "on", "always":
		return modeOn, nil
	case "off", "never":
		return modeOff, nil
	}
	return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
}

// enabled decides the mode for output written to f. Auto asks whether f
// is a terminal.
func (m terminalMode) enabled(f *os.File) bool {
	switch m {
	case modeOn:
		return true
	case modeOff:
		return false
	}
	return f != nil && isTerminal(f)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
