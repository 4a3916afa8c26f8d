// Package state holds the generator screen state and its pure update functions.
//
// Every update returns the next State together with an Effect. Callers own
// the side effects: persisting history, writing the clipboard and scheduling
// the toast expiry.
package state

import (
	"errors"
	"time"

	"github.com/verte-zerg/pwgen/internal/generator"
	"github.com/verte-zerg/pwgen/internal/history"
	"github.com/verte-zerg/pwgen/internal/model"
	"github.com/verte-zerg/pwgen/internal/strength"
)

// EmptyPoolPlaceholder replaces the password when no class is selected.
const EmptyPoolPlaceholder = "Select at least one character type"

// ToastDuration is how long the copied indicator stays visible.
const ToastDuration = 1500 * time.Millisecond

// Generator produces a password for a config.
type Generator interface {
	Generate(cfg model.GenerationConfig) (string, error)
}

// State is the full screen state.
type State struct {
	Config      model.GenerationConfig
	Password    string
	Placeholder string
	History     history.Log
	Copied      bool
	CopyErr     string
	GenerateErr string

	toastToken uint64
}

// Effect lists the side effects requested by an update.
type Effect struct {
	PersistHistory bool
	// CopyValue is non-empty when the clipboard should be written.
	CopyValue string
	// ExpireToast is non-zero when ExpireToast should be delivered after ToastDuration.
	ExpireToast uint64
}

// New returns the initial state.
func New(cfg model.GenerationConfig, log history.Log) State {
	if log == nil {
		log = history.Log{}
	}
	return State{Config: cfg, History: log}
}

// SetLength sets the length clamped to the slider bounds.
func SetLength(s State, n int) State {
	s.Config.Length = clampLength(n)
	return s
}

// AdjustLength moves the length by delta within the slider bounds.
func AdjustLength(s State, delta int) State {
	return SetLength(s, s.Config.Length+delta)
}

// Toggle flips a character class flag.
func Toggle(s State, class model.CharacterClass) State {
	s.Config = s.Config.With(class, !s.Config.Uses(class))
	return s
}

// Generate creates a password and records it in history.
func Generate(s State, gen Generator, now time.Time) (State, Effect, error) {
	pw, err := gen.Generate(s.Config)
	if errors.Is(err, generator.ErrEmptyPool) {
		s.Password = ""
		s.Placeholder = EmptyPoolPlaceholder
		s.GenerateErr = ""
		return s, Effect{}, nil
	}
	if err != nil {
		s.GenerateErr = err.Error()
		return s, Effect{}, err
	}
	s.Password = pw
	s.Placeholder = ""
	s.GenerateErr = ""
	s.History = history.Prepend(s.History, model.GeneratedPassword{Value: pw, CreatedAt: now})
	return s, Effect{PersistHistory: true}, nil
}

// ClearHistory drops every history entry.
func ClearHistory(s State) (State, Effect) {
	s.History = history.Log{}
	return s, Effect{PersistHistory: true}
}

// CopyRequested asks for the current password to be copied.
func CopyRequested(s State) (State, Effect) {
	if s.Password == "" {
		return s, Effect{}
	}
	return s, Effect{CopyValue: s.Password}
}

// CopySucceeded shows the copied indicator and supersedes any pending expiry.
func CopySucceeded(s State) (State, Effect) {
	s.toastToken++
	s.Copied = true
	s.CopyErr = ""
	return s, Effect{ExpireToast: s.toastToken}
}

// CopyFailed records a clipboard error without showing the indicator.
func CopyFailed(s State, err error) State {
	s.Copied = false
	if err != nil {
		s.CopyErr = err.Error()
	}
	return s
}

// ExpireToast hides the indicator if token is the latest one issued.
func ExpireToast(s State, token uint64) State {
	if token != s.toastToken {
		return s
	}
	s.Copied = false
	return s
}

// Strength scores the current password.
func Strength(s State) (int, string) {
	score := strength.Score(s.Password)
	return score, strength.Label(score)
}

func clampLength(n int) int {
	if n < model.MinLength {
		return model.MinLength
	}
	if n > model.MaxLength {
		return model.MaxLength
	}
	return n
}
