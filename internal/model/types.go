// Package model defines shared data structures.
package model

import "time"

// Length bounds accepted by the interactive slider and the CLI.
const (
	MinLength     = 4
	MaxLength     = 64
	DefaultLength = 16
)

// CharacterClass identifies one of the fixed alphabets.
type CharacterClass int

// Classes in pool order.
const (
	Lower CharacterClass = iota
	Upper
	Digit
	Symbol
)

// AllClasses lists every class in pool order.
var AllClasses = []CharacterClass{Lower, Upper, Digit, Symbol}

// Alphabet returns the characters bound to the class.
func (c CharacterClass) Alphabet() string {
	switch c {
	case Lower:
		return "abcdefghijklmnopqrstuvwxyz"
	case Upper:
		return "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	case Digit:
		return "0123456789"
	case Symbol:
		return "!@#$%^&*()-_=+[]{};:,.<>/?"
	default:
		return ""
	}
}

func (c CharacterClass) String() string {
	switch c {
	case Lower:
		return "lowercase"
	case Upper:
		return "uppercase"
	case Digit:
		return "digits"
	case Symbol:
		return "symbols"
	default:
		return "unknown"
	}
}

// GenerationConfig defines generator settings.
type GenerationConfig struct {
	Length     int
	UseLower   bool
	UseUpper   bool
	UseDigits  bool
	UseSymbols bool
}

// DefaultGenerationConfig mirrors the initial widget state.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Length:    DefaultLength,
		UseLower:  true,
		UseUpper:  true,
		UseDigits: true,
	}
}

// Uses reports whether the class is enabled.
func (c GenerationConfig) Uses(class CharacterClass) bool {
	switch class {
	case Lower:
		return c.UseLower
	case Upper:
		return c.UseUpper
	case Digit:
		return c.UseDigits
	case Symbol:
		return c.UseSymbols
	default:
		return false
	}
}

// With returns a copy with the class flag set to enabled.
func (c GenerationConfig) With(class CharacterClass, enabled bool) GenerationConfig {
	switch class {
	case Lower:
		c.UseLower = enabled
	case Upper:
		c.UseUpper = enabled
	case Digit:
		c.UseDigits = enabled
	case Symbol:
		c.UseSymbols = enabled
	}
	return c
}

// GeneratedPassword is a single history entry.
type GeneratedPassword struct {
	Value     string
	CreatedAt time.Time
}
