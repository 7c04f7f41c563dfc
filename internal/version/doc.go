// Package version exposes build metadata for the alarm clock binaries.
//
// Variables Version, Commit, and BuildTime are injected at build time via
// Go ldflags; when they are not, Full falls back to the VCS information the
// Go toolchain stamps into the binary.
package version
