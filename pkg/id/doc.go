// Package id provides 128-bit, lexicographically sortable identifiers.
//
// rolo uses them as request ids on the HTTP surface and as batch ids in
// resolver logs, where the Short form keeps log lines readable while the
// time-ordered layout keeps ids sortable by creation.
//
// # Format
//
// An ID is 16 bytes big-endian: [8 bytes ms_timestamp][8 bytes sequence].
// Byte-wise comparison therefore preserves chronological order, and ids
// minted within the same millisecond stay strictly increasing by sequence.
//
// # Monotonicity
//
// A Generator is monotonic per process. When the system clock regresses it
// pins to the last seen millisecond and keeps counting the sequence; when
// the sequence would overflow within one millisecond it waits for the next
// millisecond before emitting.
//
// Usage
//
//	g := id.NewGenerator()
//	rid := g.Next()
//	rid.String() // full 32-char hex form
//	rid.Short()  // 12-char prefix for log correlation
package id
