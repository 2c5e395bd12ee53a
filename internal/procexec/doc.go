// Package procexec is catalyst's subprocess execution primitive: run an
// argv, inherit stdout/stderr, return the exit code or a spawn error.
// It carries no build-specific logic — spec §6 specifies it only at this
// interface.
package procexec
