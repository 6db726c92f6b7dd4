// Package textutil provides small string helpers shared by the naming and
// identity packages, chiefly filesystem-safe sanitization of inferred titles.
package textutil
