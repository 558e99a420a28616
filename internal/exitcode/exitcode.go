// Package exitcode defines exit codes for the CLI and the web server.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, empty text, unknown task, locked day).
	UserError = 1

	// ConfigError indicates the configuration could not be loaded.
	ConfigError = 2

	// StorageError indicates the durable mirror could not be read or written.
	StorageError = 3

	// ServerError indicates the HTTP server stopped with an error.
	ServerError = 4
)
