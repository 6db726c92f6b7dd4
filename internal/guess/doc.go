// Package guess turns a raw media filename into a loose, best-effort
// structured hint about what it names.
//
// The Guess type is deliberately untyped at the edges: Season and Episode may
// each be absent, a scalar, or a list, mirroring the duck-typed output of
// filename-guessing libraries. Callers must treat every field as untrusted;
// the identify package normalizes a Guess exactly once at its boundary.
package guess
