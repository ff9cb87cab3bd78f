package disclosure

import (
	"errors"
	"fmt"
)

// ErrUnknownInput is returned by ParseActivation for an input kind other
// than "pointer" or "key".
var ErrUnknownInput = errors.New("disclosure: unknown input kind")

// Input is the modality an affordance was activated with.
type Input int

const (
	Pointer Input = iota
	Keyboard
)

// Activation is one user interaction with a toggle affordance.
type Activation struct {
	Input Input
	Key   string // KeyboardEvent.key; empty for pointer input
}

// Click returns a pointer activation.
func Click() Activation {
	return Activation{Input: Pointer}
}

// KeyPress returns a keyboard activation for key.
func KeyPress(key string) Activation {
	return Activation{Input: Keyboard, Key: key}
}

// Toggles reports whether the activation should toggle the drawer.
func (a Activation) Toggles() bool {
	if a.Input == Pointer {
		return true
	}
	switch a.Key {
	// Older browsers report Space as "Spacebar".
	case "Enter", " ", "Spacebar", "Space":
		return true
	}
	return false
}

// ParseActivation decodes the form values posted by the affordance:
// input=pointer, or input=key with the pressed key. Any other input,
// including none, is rejected.
func ParseActivation(input, key string) (Activation, error) {
	switch input {
	case "pointer":
		return Click(), nil
	case "key":
		return KeyPress(key), nil
	default:
		return Activation{}, fmt.Errorf("%w: %q", ErrUnknownInput, input)
	}
}
