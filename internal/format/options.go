package format

import (
	"errors"
	"fmt"
	"strings"
)

// Policy decides what happens to the comma after the last element of a
// list that spans several lines. Single-line lists never keep one.
type Policy uint8

const (
	Ignore Policy = iota
	Remove
	Insert
)

var ErrUnknownPolicy = errors.New("unknown trailing comma policy")

func (p Policy) String() string {
	switch p {
	case Remove:
		return "remove"
	case Insert:
		return "insert"
	default:
		return "ignore"
	}
}

// ParsePolicy reads the manifest spelling of a policy. Empty means Ignore.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ignore":
		return Ignore, nil
	case "remove":
		return Remove, nil
	case "insert":
		return Insert, nil
	}
	return Ignore, fmt.Errorf("%q: %w", s, ErrUnknownPolicy)
}

type Options struct {
	TrailingCommas Policy
	// Indent is written once per nesting level. Empty means four spaces.
	Indent string
}

const defaultIndent = "    "

func (o Options) withDefaults() Options {
	if o.Indent == "" {
		o.Indent = defaultIndent
	}
	return o
}
