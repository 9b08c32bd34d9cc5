// Package infra contains infrastructure adapters for the trading context.
package infra

import (
	"fmt"
	"io"
	"os"
	"time"
)

// ConsoleNotifier writes decision outcomes to the terminal for CLI mode.
type ConsoleNotifier struct {
	out io.Writer
}

// NewConsoleNotifier creates a ConsoleNotifier writing to stdout.
func NewConsoleNotifier() *ConsoleNotifier {
	return &ConsoleNotifier{out: os.Stdout}
}

// Approved prints an approval confirmation.
func (n *ConsoleNotifier) Approved(msg string) {
	n.line("APPROVED", msg)
}

// Rejected prints a rejection confirmation.
func (n *ConsoleNotifier) Rejected(msg string) {
	n.line("REJECTED", msg)
}

// Failed prints a decision failure.
func (n *ConsoleNotifier) Failed(msg string) {
	n.line("FAILED", msg)
}

func (n *ConsoleNotifier) line(tag, msg string) {
	fmt.Fprintf(n.out, "[%s] %-8s %s\n", time.Now().Format("15:04:05"), tag, msg)
}
