// Package store provides SQLite-backed durable storage for animation
// repositories.
//
// One repository is one local database file holding:
//   - Images: content-addressed PNG bitmaps, keyed by pixel digest
//   - Frames: playback steps binding an image to a duration and properties
//   - Transitions: directed edges between frames (parallel edges allowed)
//   - Repository: a singleton row designating the start frame
//
// # Storage Patterns
//
// Content addressing
//   - images.key is derived from pixel data, so identical bitmaps share
//     one row; PutImage is an insert-if-absent
//
// Referential integrity twice over
//   - Writers check endpoint existence inside the transaction and return
//     typed referential errors; foreign keys stay ON as the backstop
//
// Deterministic query results
//   - Listings order by rowid; outgoing transitions order by
//     (target_frame_id, id) so walk candidates are stable across runs
//
// Property bags
//   - frames.properties_json holds RFC 8785 canonical JSON; the same bag
//     always produces the same column bytes
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Image keys are computed in internal/imaging from normalized RGBA pixel
// data, so any writer that follows the same scheme produces the same keys.
package store
