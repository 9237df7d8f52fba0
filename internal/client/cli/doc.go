// Package cli implements the spxp command dispatcher.
//
// Every invocation runs exactly one command against one identity, selected
// with -i and defaulting to the configured default identity. Results go to
// stdout, diagnostics and logs to stderr. App.Run returns the exit code:
// ExitOK, ExitFailure for runtime errors and ExitUsage for usage mistakes
// and failed preconditions.
package cli
