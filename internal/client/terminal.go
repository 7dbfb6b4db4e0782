package client

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mdouchement/resourcekit/internal/client/editor"
	"github.com/pkg/errors"
)

// A Terminal renders an edition session on a text terminal.
type Terminal struct {
	Out io.Writer
	// AssumeYes answers accept to every confirmation.
	AssumeYes bool
	// Prompt reads one answer. It defaults to readline.Line.
	Prompt func(prompt string) (string, error)
}

// Alert implements editor.View.
func (t *Terminal) Alert(title, message string) {
	fmt.Fprintf(t.Out, "%s: %s\n", title, message)
}

// Confirm implements editor.View.
func (t *Terminal) Confirm(title, message, cancel, accept string) bool {
	if t.AssumeYes {
		return true
	}

	prompt := t.Prompt
	if prompt == nil {
		prompt = readline.Line
	}

	answer, err := prompt(fmt.Sprintf("%s - %s [%s/%s]: ", title, message, cancel, accept))
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(answer), accept)
}

// Back implements editor.View.
// A terminal session ends with the command, there is nothing to go back to.
func (t *Terminal) Back() {}

// A FixedLocator reports the position given on the command line.
type FixedLocator struct {
	Position *editor.Position
}

// CurrentPosition implements editor.Locator.
func (l FixedLocator) CurrentPosition() (editor.Position, error) {
	if l.Position == nil {
		return editor.Position{}, errors.New("no position provided")
	}
	return *l.Position, nil
}
