// Package props provides the typed property values attached to animation
// frames.
//
// Values form a small sealed set: Null, String, Int, Bool, Array, and
// Object. There is no float type; durations and coordinates are integers,
// and keeping floats out of the stored JSON keeps serialized property bags
// byte-stable and diffable.
//
// Property bags are persisted as canonical JSON (RFC 8785): object keys
// sorted by UTF-16 code units, strings NFC-normalized, no HTML escaping.
// Use MarshalCanonical for storage; Unmarshal parses stored text back into
// values.
//
// Null is the removal sentinel. Setting a property to Null deletes the key,
// so canonical serialization rejects Null values inside a bag.
package props
