package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/girassol/internal/logger"
)

// Failure categories shared across the persistence, backup and AI layers.
var (
	ErrStorageRead  = stderrors.New("storage read failed")
	ErrStorageWrite = stderrors.New("storage write failed")
	ErrImportParse  = stderrors.New("backup document is not a JSON object")
	ErrImportNoKeys = stderrors.New("backup document has no recognized collections")
	ErrAICall       = stderrors.New("ai request failed")
)

// InvalidBackupMessage is shown for every rejected import, whatever the cause.
const InvalidBackupMessage = "invalid backup file"

// UserMessage maps an error to the text a user should see. Import failures
// collapse into a single message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if stderrors.Is(err, ErrImportParse) || stderrors.Is(err, ErrImportNoKeys) {
		return InvalidBackupMessage
	}
	return err.Error()
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %s", UserMessage(err))
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
