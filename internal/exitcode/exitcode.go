// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, blank text, unknown task).
	UserError = 1

	// AuthError indicates a session or credential error.
	AuthError = 2

	// BackendError indicates a storage or Google Tasks failure.
	BackendError = 3
)
