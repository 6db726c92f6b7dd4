package identify

import (
	"errors"
	"reflect"
	"testing"

	"linkarr/internal/guess"
)

func TestResolveMovie(t *testing.T) {
	r := NewResolver(nil)
	id, err := r.Resolve(Request{
		CleanedName:  "Movie.Name.2020.mkv",
		RawFileName:  "www.example.com - Movie.Name.2020.mkv",
		Guess:        guess.Guess{Type: guess.TypeMovie, Title: "Movie Name", Year: 2020},
		AtSourceRoot: true,
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if id.Kind != KindMovie || id.Title != "Movie Name" || id.Year != 2020 {
		t.Errorf("identity = %+v, want movie Movie Name (2020)", id)
	}
}

func TestResolveMovieWithoutYear(t *testing.T) {
	r := NewResolver(nil)
	id, err := r.Resolve(Request{
		Guess:        guess.Guess{Type: guess.TypeMovie, Title: "Old Movie"},
		AtSourceRoot: true,
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if id.Year != 0 {
		t.Errorf("year = %d, want 0 (unknown)", id.Year)
	}
}

func TestResolveMovieWithoutTitleRejected(t *testing.T) {
	r := NewResolver(nil)
	_, err := r.Resolve(Request{
		RawFileName:  "mystery.mkv",
		Guess:        guess.Guess{Type: guess.TypeMovie},
		AtSourceRoot: true,
	})
	if !errors.Is(err, ErrNoTitle) {
		t.Fatalf("err = %v, want ErrNoTitle", err)
	}
}

func TestResolveEpisodeFolderTitleWins(t *testing.T) {
	r := NewResolver(nil)
	id, err := r.Resolve(Request{
		CleanedName:  "some.other.title.S01E02.mkv",
		ParentFolder: "The Show",
		RawFileName:  "some.other.title.S01E02.mkv",
		Guess: guess.Guess{
			Type:    guess.TypeEpisode,
			Title:   "Some Other Title",
			Season:  1,
			Episode: 2,
		},
		AtSourceRoot: false,
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if id.Title != "The Show" {
		t.Errorf("title = %q, want folder-derived %q", id.Title, "The Show")
	}
	if id.Season != 1 || !reflect.DeepEqual(id.Episodes, []int{2}) {
		t.Errorf("season/episodes = %d/%v, want 1/[2]", id.Season, id.Episodes)
	}
}

func TestResolveSubdirectoryBiasesEpisode(t *testing.T) {
	// The guesser is unsure, but the file lives in a subdirectory: treat it
	// as part of a show and fall back to the filename for numbering.
	r := NewResolver(nil)
	id, err := r.Resolve(Request{
		CleanedName:  "Show.Name.S02E05.mp4",
		ParentFolder: "Show Name",
		RawFileName:  "Show.Name.S02E05.mp4",
		Guess:        guess.Guess{Type: guess.TypeUnknown},
		AtSourceRoot: false,
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if id.Kind != KindEpisode || id.Title != "Show Name" {
		t.Errorf("identity = %+v, want episode of Show Name", id)
	}
	if id.Season != 2 || !reflect.DeepEqual(id.Episodes, []int{5}) {
		t.Errorf("season/episodes = %d/%v, want 2/[5]", id.Season, id.Episodes)
	}
}

func TestResolveEpisodeRegexFallbackFillsMissing(t *testing.T) {
	r := NewResolver(nil)
	id, err := r.Resolve(Request{
		CleanedName:  "Show.Name.mp4",
		ParentFolder: "Show Name",
		RawFileName:  "Show.Name.S02E05.mp4",
		Guess:        guess.Guess{Type: guess.TypeEpisode, Title: "Show Name"},
		AtSourceRoot: false,
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if id.Season != 2 || !reflect.DeepEqual(id.Episodes, []int{5}) {
		t.Errorf("season/episodes = %d/%v, want 2/[5] from fallback", id.Season, id.Episodes)
	}
}

func TestResolveEpisodeIncompleteRejected(t *testing.T) {
	r := NewResolver(nil)
	_, err := r.Resolve(Request{
		CleanedName:  "x.mkv",
		ParentFolder: "X",
		RawFileName:  "x.mkv",
		Guess:        guess.Guess{Type: guess.TypeEpisode, Title: "X"},
		AtSourceRoot: false,
	})
	if !errors.Is(err, ErrIncompleteEpisodeInfo) {
		t.Fatalf("err = %v, want ErrIncompleteEpisodeInfo", err)
	}
}

func TestResolveUnknownAtRootRejected(t *testing.T) {
	r := NewResolver(nil)
	_, err := r.Resolve(Request{
		RawFileName:  "blob.mkv",
		Guess:        guess.Guess{Type: guess.TypeUnknown},
		AtSourceRoot: true,
	})
	if !errors.Is(err, ErrUnknownMediaType) {
		t.Fatalf("err = %v, want ErrUnknownMediaType", err)
	}
}

func TestResolveSeasonListCollapsesToFirst(t *testing.T) {
	r := NewResolver(nil)
	id, err := r.Resolve(Request{
		ParentFolder: "The Show",
		RawFileName:  "the.show.S03E01.mkv",
		Guess: guess.Guess{
			Type:    guess.TypeEpisode,
			Season:  []any{3, 4},
			Episode: []any{1, 2},
		},
		AtSourceRoot: false,
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if id.Season != 3 {
		t.Errorf("season = %d, want first of list 3", id.Season)
	}
	if !reflect.DeepEqual(id.Episodes, []int{1, 2}) {
		t.Errorf("episodes = %v, want [1 2]", id.Episodes)
	}
}

func TestResolveEpisodeListDeduplicatedAndSorted(t *testing.T) {
	id, err := NewEpisode("Show", 1, []int{3, 1, 3, 2})
	if err != nil {
		t.Fatalf("NewEpisode: %v", err)
	}
	if !reflect.DeepEqual(id.Episodes, []int{1, 2, 3}) {
		t.Errorf("episodes = %v, want [1 2 3]", id.Episodes)
	}
}

func TestIntListShapes(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  []int
	}{
		{"nil", nil, nil},
		{"int", 5, []int{5}},
		{"float64", 5.0, []int{5}},
		{"string digits", "7", []int{7}},
		{"string garbage", "seven", nil},
		{"int slice", []int{1, 2}, []int{1, 2}},
		{"any slice mixed", []any{1, "2", 3.0, "x"}, []int{1, 2, 3}},
		{"negative dropped", -1, nil},
		{"unsupported type", struct{}{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := intList(tt.value)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("intList(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestIdentityString(t *testing.T) {
	movie, _ := NewMovie("Movie Name", 2020)
	if got := movie.String(); got != "Movie Name (2020)" {
		t.Errorf("movie string = %q", got)
	}
	noYear, _ := NewMovie("Movie Name", 0)
	if got := noYear.String(); got != "Movie Name" {
		t.Errorf("no-year movie string = %q", got)
	}
	episode, _ := NewEpisode("Show", 1, []int{1, 2})
	if got := episode.String(); got != "Show S01E01-E02" {
		t.Errorf("episode string = %q", got)
	}
}
