package ui

import (
	"fmt"
	"os"
)

// Success prints a success message with checkmark
func Success(format string, args ...any) {
	fmt.Printf("✓ "+format+"\n", args...)
}

// Error prints an error message to stderr
func Error(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}

// Info prints an info message
func Info(format string, args ...any) {
	fmt.Printf("ℹ "+format+"\n", args...)
}

// Warning prints a warning message to stderr
func Warning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "⚠ "+format+"\n", args...)
}
