//go:build windows

package runtime

import "strings"

// Windows environment variable names are case-insensitive.
func envKeyEqual(a, b string) bool { return strings.EqualFold(a, b) }
