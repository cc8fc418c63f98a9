// Package utils holds small one-off helpers shared across the inkwell
// commands.
package utils

// Build metadata, injected with -ldflags at release time.
var (
	Version   = "dev"
	Sha       = "HEAD"
	Buildtime = "dev"
)
