// Package upstream talks to the user directory API.
//
// The client issues GET {baseURL}/{id} and normalizes the response into a
// store.Record. A profile's region comes from location.country.name with a
// fallback to the top-level country.name; the record's CreatedAt is stamped
// at fetch time, not taken from the directory.
//
// Misses (non-200 responses, empty result sets, unparseable bodies) are
// reported as ok=false with a nil error; errors are reserved for transport
// failures. Callers treat both as a failed fetch but log them differently.
package upstream
