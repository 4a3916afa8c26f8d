// Package clipboard writes passwords to the system clipboard.
package clipboard

import (
	"errors"

	atotto "github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no clipboard utility is present.
var ErrUnavailable = errors.New("clipboard is not available")

// Sink accepts text to copy.
type Sink interface {
	Write(text string) error
}

// System writes through the platform clipboard.
type System struct{}

// Write copies text to the clipboard.
func (System) Write(text string) error {
	if atotto.Unsupported {
		return ErrUnavailable
	}
	return atotto.WriteAll(text)
}

// Func adapts a function to Sink.
type Func func(text string) error

// Write calls f.
func (f Func) Write(text string) error {
	return f(text)
}
