package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{name: "native 0-10 scale is identity", input: 7.4, expected: 7.4},
		{name: "zero passes through", input: 0, expected: 0},
		{name: "upper bound passes through", input: 10, expected: 10},
		{name: "0-100 scale is divided by 10", input: 85, expected: 8.5},
		{name: "maximum 0-100 value", input: 100, expected: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.input)
			require.NotNil(t, got)
			assert.InDelta(t, tt.expected, *got, 0.0001)
			assert.LessOrEqual(t, *got, 10.0)
		})
	}
}

func TestPopularity(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected int
	}{
		{name: "integer passes through", input: 42, expected: 42},
		{name: "rounds up", input: 12.6, expected: 13},
		{name: "rounds down", input: 12.4, expected: 12},
		{name: "half rounds away from zero", input: 12.5, expected: 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Popularity(tt.input)
			require.NotNil(t, got)
			assert.Equal(t, tt.expected, *got)
		})
	}
}

func validMovieRecord() *Record {
	score := 8.5
	return &Record{
		Kind:   KindMovie,
		Title:  "Terminator",
		Score:  &score,
		Genres: []string{"Action"},
		Movie:  &MovieDetails{},
	}
}

func TestRecordValidate(t *testing.T) {
	t.Run("valid movie record", func(t *testing.T) {
		assert.NoError(t, validMovieRecord().Validate())
	})

	t.Run("empty title fails", func(t *testing.T) {
		rec := validMovieRecord()
		rec.Title = ""
		var verr *ValidationError
		require.ErrorAs(t, rec.Validate(), &verr)
		assert.Equal(t, "title", verr.Field)
	})

	t.Run("score above 10 is rescaled defensively", func(t *testing.T) {
		rec := validMovieRecord()
		score := 85.0
		rec.Score = &score
		require.NoError(t, rec.Validate())
		assert.InDelta(t, 8.5, *rec.Score, 0.0001)
	})

	t.Run("negative score fails", func(t *testing.T) {
		rec := validMovieRecord()
		score := -1.0
		rec.Score = &score
		var verr *ValidationError
		require.ErrorAs(t, rec.Validate(), &verr)
		assert.Equal(t, "score", verr.Field)
	})

	t.Run("negative popularity fails", func(t *testing.T) {
		rec := validMovieRecord()
		pop := -3
		rec.Popularity = &pop
		var verr *ValidationError
		require.ErrorAs(t, rec.Validate(), &verr)
		assert.Equal(t, "popularity", verr.Field)
	})

	t.Run("unknown age rating fails", func(t *testing.T) {
		rec := validMovieRecord()
		rating := AgeRating("X-18")
		rec.AgeRating = &rating
		var verr *ValidationError
		require.ErrorAs(t, rec.Validate(), &verr)
		assert.Equal(t, "age_rating", verr.Field)
	})

	t.Run("detail group must match kind", func(t *testing.T) {
		rec := validMovieRecord()
		rec.Kind = KindAnime
		assert.Error(t, rec.Validate())
	})

	t.Run("two detail groups fail", func(t *testing.T) {
		rec := validMovieRecord()
		rec.Anime = &AnimeDetails{}
		assert.Error(t, rec.Validate())
	})

	t.Run("game requires platforms", func(t *testing.T) {
		rec := &Record{
			Kind:  KindGame,
			Title: "Half-Life",
			Game:  &GameDetails{},
		}
		var verr *ValidationError
		require.ErrorAs(t, rec.Validate(), &verr)
		assert.Equal(t, "available_platforms", verr.Field)

		rec.Game.Platforms = []Platform{}
		assert.NoError(t, rec.Validate())
	})

	t.Run("unknown platform fails", func(t *testing.T) {
		rec := &Record{
			Kind:  KindGame,
			Title: "Half-Life",
			Game:  &GameDetails{Platforms: []Platform{"Wii U"}},
		}
		var verr *ValidationError
		require.ErrorAs(t, rec.Validate(), &verr)
		assert.Equal(t, "available_platforms", verr.Field)
	})
}

func TestParseKind(t *testing.T) {
	for _, valid := range []string{"anime", "game", "movie", "series"} {
		kind, err := ParseKind(valid)
		assert.NoError(t, err)
		assert.Equal(t, Kind(valid), kind)
	}

	_, err := ParseKind("podcast")
	assert.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"FINISHED", "IN_PROGRESS", "DROPPED", "PLANNED"} {
		status, err := ParseStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, Status(valid), status)
	}

	_, err := ParseStatus("finished")
	assert.Error(t, err)
}
