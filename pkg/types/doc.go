// Package types defines the shared types used across symgr: the filesystem
// interface injected into commands, the observed state of a path, and the
// result types reported back to the CLI layer.
package types
