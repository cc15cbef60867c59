package logger

// NoOpLogger discards every entry. Tests and optional components use it.
type NoOpLogger struct{}

// NewNop returns a Logger that discards everything.
func NewNop() Logger {
	return NoOpLogger{}
}

func (NoOpLogger) Debug(string, ...Field) {}
func (NoOpLogger) Info(string, ...Field)  {}
func (NoOpLogger) Warn(string, ...Field)  {}
func (NoOpLogger) Error(string, ...Field) {}
func (NoOpLogger) Fatal(string, ...Field) {}

func (n NoOpLogger) With(...Field) Logger { return n }

func (NoOpLogger) Sync() error { return nil }
