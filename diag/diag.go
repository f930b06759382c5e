// Package diag provides the diagnostic sink used by the solvers.
//
// Solvers emit non-fatal warnings (decomposition fallbacks, unstable
// warm-up configurations, ill-conditioned systems) through this package.
// Warnings never change solver return values. Embedders can redirect or
// silence them by installing their own Logger.
package diag

import (
	"log"
	"os"
	"sync"
)

// Logger receives diagnostic warnings emitted by the solvers.
type Logger interface {
	Logf(format string, args ...any)
}

type stdLogger struct {
	l *log.Logger
}

func (s stdLogger) Logf(format string, args ...any) {
	s.l.Printf(format, args...)
}

type discard struct{}

func (discard) Logf(string, ...any) {}

// Discard is a Logger that drops all diagnostics.
var Discard Logger = discard{}

var (
	mu      sync.RWMutex
	current Logger = stdLogger{l: log.New(os.Stderr, "leastsquares: ", log.LstdFlags)}
)

// Set installs l as the process-wide diagnostic sink and returns the
// previously installed one. Passing nil restores the default stderr logger.
func Set(l Logger) Logger {
	mu.Lock()
	defer mu.Unlock()
	prev := current
	if l == nil {
		l = stdLogger{l: log.New(os.Stderr, "leastsquares: ", log.LstdFlags)}
	}
	current = l

	return prev
}

// Logf forwards a warning to the installed sink.
func Logf(format string, args ...any) {
	mu.RLock()
	l := current
	mu.RUnlock()
	l.Logf(format, args...)
}
