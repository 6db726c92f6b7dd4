package guess

import (
	"reflect"
	"testing"
)

func TestParseMovie(t *testing.T) {
	g := Parse("Movie.Name.2020.1080p.BluRay.x264.mkv")
	if g.Type != TypeMovie {
		t.Fatalf("type = %q, want movie", g.Type)
	}
	if g.Title != "Movie Name" {
		t.Errorf("title = %q, want %q", g.Title, "Movie Name")
	}
	if g.Year != 2020 {
		t.Errorf("year = %d, want 2020", g.Year)
	}
}

func TestParseEpisodeScalar(t *testing.T) {
	g := Parse("show.name.S02E05.720p.HDTV.mp4")
	if g.Type != TypeEpisode {
		t.Fatalf("type = %q, want episode", g.Type)
	}
	if g.Title != "Show Name" {
		t.Errorf("title = %q, want %q", g.Title, "Show Name")
	}
	if g.Season != 2 {
		t.Errorf("season = %v, want 2", g.Season)
	}
	if g.Episode != 5 {
		t.Errorf("episode = %v, want scalar 5", g.Episode)
	}
}

func TestParseMultiEpisodeList(t *testing.T) {
	g := Parse("Show Name S01E01-E02-E03.mkv")
	if g.Type != TypeEpisode {
		t.Fatalf("type = %q, want episode", g.Type)
	}
	list, ok := g.Episode.([]int)
	if !ok {
		t.Fatalf("episode = %T, want []int", g.Episode)
	}
	if !reflect.DeepEqual(list, []int{1, 2, 3}) {
		t.Errorf("episodes = %v, want [1 2 3]", list)
	}
}

func TestParseAltNumbering(t *testing.T) {
	g := Parse("Show Name 1x05.mkv")
	if g.Type != TypeEpisode {
		t.Fatalf("type = %q, want episode", g.Type)
	}
	if g.Season != 1 || g.Episode != 5 {
		t.Errorf("season/episode = %v/%v, want 1/5", g.Season, g.Episode)
	}
}

func TestParseShowWithYear(t *testing.T) {
	g := Parse("Show Name (2019) S01E01.mkv")
	if g.Type != TypeEpisode {
		t.Fatalf("type = %q, want episode", g.Type)
	}
	if g.Year != 2019 {
		t.Errorf("year = %d, want 2019", g.Year)
	}
	if g.Title != "Show Name" {
		t.Errorf("title = %q, want %q", g.Title, "Show Name")
	}
}

func TestParseDate(t *testing.T) {
	g := Parse("Daily.Show.2024.03.15.S29E101.mkv")
	if g.Date != "2024-03-15" {
		t.Errorf("date = %q, want 2024-03-15", g.Date)
	}
}

func TestParseUnknown(t *testing.T) {
	g := Parse("randomfile.mkv")
	if g.Type != TypeUnknown {
		t.Errorf("type = %q, want unknown", g.Type)
	}
	if g.Season != nil || g.Episode != nil {
		t.Errorf("season/episode should be nil, got %v/%v", g.Season, g.Episode)
	}
}

func TestParseNeverPanicsOnGarbage(t *testing.T) {
	inputs := []string{"", ".", "...", "S01E01", "2020", "()[]{}.mkv", "x265"}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_ = Parse(in)
		})
	}
}
