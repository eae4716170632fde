package port

// Fields - structured data attached to a log entry.
type Fields map[string]interface{}

// LoggerPort isolates the core from the concrete logging backend.
type LoggerPort interface {
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	// Error logs msg together with err, which may be nil.
	Error(msg string, err error, fields Fields)
	Debug(msg string, fields Fields)

	// WithFields returns a logger that adds fields to every entry.
	WithFields(fields Fields) LoggerPort
}
