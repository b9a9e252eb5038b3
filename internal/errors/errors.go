package errors

import (
	"fmt"
	"os"

	"github.com/kms-app/dinnerboard/internal/logger"
)

// Format prefixes an error for terminal display.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs the error to the session log, prints it, and exits with code 1.
// A nil error is a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}

// Fatalf is Fatal with a format string.
func Fatalf(format string, args ...interface{}) {
	Fatal(fmt.Errorf(format, args...))
}
