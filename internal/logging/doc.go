// Package logging assembles the structured slog loggers used across linkarr.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attr helper aliases so components emit fields with a
// consistent shape. Prefer these constructors over hand-rolled slog setup.
package logging
