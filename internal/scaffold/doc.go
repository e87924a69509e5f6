// Package scaffold builds a new Python project: it validates the host, lays
// out the package, docs and tests directories with their seed files, creates
// a virtual environment, installs the default packages and exports them to a
// requirements file. It powers the "pystarter create" command.
package scaffold
