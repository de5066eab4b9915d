// Package subject provides identifier helpers for citizen-science subjects.
//
// Two kinds of identifiers are produced:
//   - HashID: a SHA-256 hex digest of a subject ID combined with a caller
//     supplied disambiguation key. Used where an opaque, fixed-length ID is
//     needed (e.g. uploaded subject metadata).
//   - MakeIDStr / MakeIDStrs: a readable ID of the form
//     [<release_name>_]<tile_index>_<object_id>, with every hyphen in the
//     object ID replaced by "NEG".
//
// MakeIDStr works on a single record and accepts the tile index as either an
// integer or text. MakeIDStrs works column-wise on a Batch and strictly casts
// every tile index to int64, failing the whole batch on the first value that
// cannot be converted.
//
// The byte layout of both identifiers matches identifiers already stored by
// existing projects and must not change.
package subject
