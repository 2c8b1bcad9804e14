package logger

// NoOpLogger discards everything. Tests use it so handler assertions stay
// quiet; Fatal does not exit.
type NoOpLogger struct{}

// NewNop creates a no-op logger.
func NewNop() Logger {
	return &NoOpLogger{}
}

func (l *NoOpLogger) Debug(_ string, _ ...Field) {}
func (l *NoOpLogger) Info(_ string, _ ...Field)  {}
func (l *NoOpLogger) Warn(_ string, _ ...Field)  {}
func (l *NoOpLogger) Error(_ string, _ ...Field) {}
func (l *NoOpLogger) Fatal(_ string, _ ...Field) {}

// With returns the same no-op logger.
func (l *NoOpLogger) With(_ ...Field) Logger { return l }

// Sync does nothing and returns nil.
func (l *NoOpLogger) Sync() error { return nil }
