// Package identify resolves noisy media filenames into validated identities.
//
// It owns the release-tag normalizer, the defensive normalization of the
// guesser's loosely-typed output, and the movie-versus-episode decision
// procedure, including the folder-title precedence rule and the SxxEyy
// regex fallback. An Identity is only ever constructed fully valid: a movie
// always has a title, an episode always has a title, a season, and at least
// one episode number.
package identify
