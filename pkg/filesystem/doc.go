// Package filesystem provides the OS-backed implementation of types.FS and
// the metadata-preserving file copy used by bless.
package filesystem
