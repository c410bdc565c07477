package confirm

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	fterrors "github.com/julianstephens/fittrack/internal/errors"
)

// Action names a destructive operation that needs explicit approval.
type Action string

const (
	ClearAll      Action = "clear-all"
	RestoreBackup Action = "restore-backup"
	ImportReplace Action = "import-replace"
	RestoreFile   Action = "restore-file"
	DeleteWorkout Action = "delete-workout"
)

// ErrDeclined is returned by Request when the user does not approve.
var ErrDeclined = errors.New("confirmation declined")

// Token proves that one action was approved. The zero Token allows nothing.
type Token struct {
	action Action
}

// Allows reports whether the token was issued for a.
func (t Token) Allows(a Action) bool {
	return t.action != "" && t.action == a
}

func (t Token) Action() Action {
	return t.action
}

// Require returns ErrNotConfirmed unless t allows a.
func Require(t Token, a Action) error {
	if !t.Allows(a) {
		return fmt.Errorf("%s: %w", a, fterrors.ErrNotConfirmed)
	}
	return nil
}

// Confirmer asks whether an action may proceed.
type Confirmer interface {
	Confirm(ctx context.Context, action Action, prompt string) (bool, error)
}

// Func adapts a plain function to Confirmer.
type Func func(ctx context.Context, action Action, prompt string) (bool, error)

func (f Func) Confirm(ctx context.Context, action Action, prompt string) (bool, error) {
	return f(ctx, action, prompt)
}

// AssumeYes approves every action. Used for --yes.
var AssumeYes Confirmer = Func(func(context.Context, Action, string) (bool, error) {
	return true, nil
})

// Prompt asks on the terminal with a huh confirm form.
type Prompt struct{}

func (Prompt) Confirm(ctx context.Context, action Action, prompt string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return ok, nil
}

// Request asks c to approve action and returns a token bound to it.
func Request(ctx context.Context, c Confirmer, action Action, prompt string) (Token, error) {
	if c == nil {
		return Token{}, ErrDeclined
	}
	ok, err := c.Confirm(ctx, action, prompt)
	if err != nil {
		return Token{}, err
	}
	if !ok {
		return Token{}, ErrDeclined
	}
	return Token{action: action}, nil
}
