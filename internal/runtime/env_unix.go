//go:build !windows

package runtime

func envKeyEqual(a, b string) bool { return a == b }
