package types

import (
	"fmt"
	"strings"
)

// Mode selects how the pattern is interpreted.
type Mode int

const (
	// ModeLiteral matches the pattern as an exact substring.
	ModeLiteral Mode = iota
	// ModeRegex compiles the pattern as a regular expression.
	ModeRegex
)

// String returns "literal" or "regex".
func (m Mode) String() string {
	switch m {
	case ModeLiteral:
		return "literal"
	case ModeRegex:
		return "regex"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Engine selects the regular expression implementation used in ModeRegex.
type Engine int

const (
	// EngineRE2 uses Go's linear-time regexp package.
	EngineRE2 Engine = iota
	// EngineBacktrack uses a backtracking engine (lookaround, backreferences).
	EngineBacktrack
)

// String returns the flag spelling of the engine.
func (e Engine) String() string {
	switch e {
	case EngineRE2:
		return "re2"
	case EngineBacktrack:
		return "backtrack"
	default:
		return fmt.Sprintf("Engine(%d)", int(e))
	}
}

// ParseEngine parses an engine name as accepted on the command line.
func ParseEngine(s string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "re2":
		return EngineRE2, nil
	case "backtrack", "pcre":
		return EngineBacktrack, nil
	default:
		return EngineRE2, fmt.Errorf("unknown regex engine: %q (want re2 or backtrack)", s)
	}
}

// SearchConfig is the immutable per-run configuration of a search.
type SearchConfig struct {
	Pattern         string
	Mode            Mode
	Engine          Engine
	CaseInsensitive bool
	ShowLineNumbers bool
	ShowOrigin      bool
}

// Validate checks the invariants that do not require compiling the pattern.
// Regex syntax is checked by the matcher constructor.
func (c SearchConfig) Validate() error {
	if c.Pattern == "" {
		return ErrEmptyPattern
	}
	switch c.Mode {
	case ModeLiteral, ModeRegex:
	default:
		return fmt.Errorf("unknown search mode: %s", c.Mode)
	}
	switch c.Engine {
	case EngineRE2, EngineBacktrack:
	default:
		return fmt.Errorf("unknown regex engine: %s", c.Engine)
	}
	return nil
}
