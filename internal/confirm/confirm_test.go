package confirm

import (
	"context"
	"errors"
	"testing"

	fterrors "github.com/julianstephens/fittrack/internal/errors"
)

func TestRequest(t *testing.T) {
	tests := []struct {
		name      string
		confirmer Confirmer
		wantErr   error
	}{
		{"assume yes", AssumeYes, nil},
		{"declined", Func(func(context.Context, Action, string) (bool, error) { return false, nil }), ErrDeclined},
		{"nil confirmer", nil, ErrDeclined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := Request(context.Background(), tt.confirmer, ClearAll, "sure?")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Request() error = %v, want %v", err, tt.wantErr)
			}
			if got := token.Allows(ClearAll); got != (tt.wantErr == nil) {
				t.Errorf("Allows(ClearAll) = %v", got)
			}
		})
	}
}

func TestRequestPassesPrompt(t *testing.T) {
	var gotAction Action
	var gotPrompt string
	c := Func(func(_ context.Context, a Action, p string) (bool, error) {
		gotAction, gotPrompt = a, p
		return true, nil
	})

	if _, err := Request(context.Background(), c, RestoreBackup, "Restore?"); err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if gotAction != RestoreBackup || gotPrompt != "Restore?" {
		t.Errorf("confirmer saw (%q, %q)", gotAction, gotPrompt)
	}
}

func TestRequestPropagatesError(t *testing.T) {
	boom := errors.New("tty gone")
	c := Func(func(context.Context, Action, string) (bool, error) { return false, boom })

	if _, err := Request(context.Background(), c, ClearAll, ""); !errors.Is(err, boom) {
		t.Errorf("Request() error = %v, want %v", err, boom)
	}
}

func TestTokenBoundToAction(t *testing.T) {
	token, err := Request(context.Background(), AssumeYes, ClearAll, "")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	if token.Allows(RestoreBackup) {
		t.Error("clear-all token must not allow restore-backup")
	}
	if err := Require(token, ClearAll); err != nil {
		t.Errorf("Require(ClearAll) = %v", err)
	}
	if err := Require(token, ImportReplace); !errors.Is(err, fterrors.ErrNotConfirmed) {
		t.Errorf("Require(ImportReplace) = %v, want ErrNotConfirmed", err)
	}
	if err := Require(Token{}, ClearAll); !errors.Is(err, fterrors.ErrNotConfirmed) {
		t.Errorf("zero token Require = %v, want ErrNotConfirmed", err)
	}
}
