// Package runtime runs external tools (the Python interpreter and pip) on
// behalf of the scaffolder. A Runner returns a Result for every process that
// started, whatever its exit code; callers decide with Result.Check whether a
// non-zero exit is fatal. Errors from Run itself mean the process could not be
// started or was cancelled.
package runtime
