package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/fittrack/internal/logger"
)

// Format renders err for the terminal as "Error: ..." followed by a hint
// line when the error type has a known remedy.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\n" + hint
	}
	return msg
}

func Formatf(format string, args ...any) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint suggests what the user can do about err, or "".
func Hint(err error) string {
	var quota *QuotaError
	switch {
	case stderrors.As(err, &quota):
		return "Export your workouts ('fittrack export') and delete old entries to free space."
	case stderrors.Is(err, ErrNotConfirmed):
		return "Re-run with --yes to confirm."
	case IsValidation(err):
		return "Duration is 1-500 minutes, calories 1-10000 and type one of cardio, strength, flexibility."
	}
	return ""
}

// Fatal logs err, prints it to stderr and exits with status 1. A nil err is ignored.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}

func Fatalf(format string, args ...any) {
	Fatal(fmt.Errorf(format, args...))
}
