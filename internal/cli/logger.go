package cli

import (
	"fmt"
	"os"
	"strings"
)

// stderrLogger writes install progress as level, message, and key=value
// pairs. Debug is included; it only exists behind --verbose.
type stderrLogger struct{}

func newStderrLogger() *stderrLogger {
	return &stderrLogger{}
}

func (l *stderrLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.write("DEBUG", msg, keysAndValues)
}

func (l *stderrLogger) Info(msg string, keysAndValues ...interface{}) {
	l.write("INFO", msg, keysAndValues)
}

func (l *stderrLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.write("WARN", msg, keysAndValues)
}

func (l *stderrLogger) Error(msg string, keysAndValues ...interface{}) {
	l.write("ERROR", msg, keysAndValues)
}

func (l *stderrLogger) write(level, msg string, keysAndValues []interface{}) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", level, msg)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fmt.Fprintf(&sb, " %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	fmt.Fprintln(os.Stderr, sb.String())
}
