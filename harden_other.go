//go:build !linux

package selfguard

// Harden is a no-op off Linux.
func Harden() error { return nil }
