package guess

// Media type tags a Guess may carry. Anything else is treated as unknown.
const (
	TypeMovie   = "movie"
	TypeEpisode = "episode"
	TypeUnknown = "unknown"
)

// Guess is a best-effort structured parse of a media filename. Every field
// may be absent or malformed; Season and Episode hold an int, a []int, or
// nil. Consumers must defensively normalize before use.
type Guess struct {
	Type    string
	Title   string
	Year    int
	Season  any
	Episode any
	Date    string
}

// Func is the collaborator contract: cleaned filename in, loose guess out.
// It never fails; a filename the guesser cannot read yields a Guess with
// TypeUnknown and zero fields.
type Func func(name string) Guess
