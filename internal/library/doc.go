// Package library computes destination layout paths and discovers subtitle
// sidecars.
//
// The layout is a compatibility contract with downstream media servers and is
// preserved byte-for-byte: "movies/<Title> (<Year>)/<Title> (<Year>).<ext>"
// and "tvshows/<Title>/Season <NN>/<Title> - S<NN>E<NN>.<ext>" with
// zero-padded two-digit numbers. Path building never touches the filesystem.
package library
