// Package model provides the record types and error taxonomy shared across
// the repository internals.
//
// This package contains type definitions only. All other internal packages
// import model; model imports nothing internal. This keeps it the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Durations are stored as integer microseconds, never floats
//   - Image keys are scheme-prefixed content digests ("md5-" + hex)
//   - Frame and transition ids are database-assigned int64 values
package model
