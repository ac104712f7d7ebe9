package supervisor

// ExitCode mirrors the IO Manager's documented process exit codes. Only
// the fatal subset is distinguished by name; any other code is treated
// as a restartable failure.
type ExitCode int

const (
	ExitCodeSuccess                  ExitCode = 0
	ExitCodeInvalidConfig            ExitCode = 1
	ExitCodeLogInitializationFailed  ExitCode = 2
	ExitCodeInitializationFailed     ExitCode = 3
)

// fatalExitCodes are exit codes after which the IO Manager must not be
// restarted: its configuration or environment is broken in a way a
// retry cannot fix.
var fatalExitCodes = map[ExitCode]bool{
	ExitCodeInvalidConfig:           true,
	ExitCodeLogInitializationFailed: true,
	ExitCodeInitializationFailed:    true,
}

// isFatal reports whether code is one of the exit codes that must stop
// the supervisor instead of triggering a restart.
func isFatal(code ExitCode) bool {
	return fatalExitCodes[code]
}
