// Package media defines the normalized content record every provider
// adapter must produce before anything reaches persistence, together with
// the closed vocabularies (kind, age rating, platform, queue status) and
// the validation rules the record has to pass.
package media

import (
	"fmt"
	"math"
	"time"
)

// Kind discriminates the four content types sharing the content table.
type Kind string

const (
	KindAnime  Kind = "anime"
	KindGame   Kind = "game"
	KindMovie  Kind = "movie"
	KindSeries Kind = "series"
)

// ParseKind returns the Kind for a path/query value.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindAnime, KindGame, KindMovie, KindSeries:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown content kind %q", s)
}

// AgeRating is the internal age classification all provider vocabularies
// (MPAA, US TV, RU numeric, ESRB, MAL) are mapped onto.
type AgeRating string

const (
	AgeRatingG    AgeRating = "G"
	AgeRatingPG   AgeRating = "PG"
	AgeRatingPG13 AgeRating = "PG-13"
	AgeRatingR    AgeRating = "R"
	AgeRatingNC17 AgeRating = "NC-17"
)

func (r AgeRating) valid() bool {
	switch r {
	case AgeRatingG, AgeRatingPG, AgeRatingPG13, AgeRatingR, AgeRatingNC17:
		return true
	}
	return false
}

// Platform is a gaming platform a game is available on.
type Platform string

const (
	PlatformPC             Platform = "PC"
	PlatformLinux          Platform = "LINUX"
	PlatformMacOS          Platform = "MACOS"
	PlatformPSP            Platform = "PSP"
	PlatformPS3            Platform = "PS3"
	PlatformPS4            Platform = "PS4"
	PlatformPS5            Platform = "PS5"
	PlatformXbox360        Platform = "XBOX 360"
	PlatformXboxOne        Platform = "XBOX ONE"
	PlatformXboxSeriesX    Platform = "XBOX SERIES X"
	PlatformNintendoSwitch Platform = "NINTENDO SWITCH"
	PlatformIOS            Platform = "IOS"
	PlatformAndroid        Platform = "ANDROID"
	PlatformWeb            Platform = "WEB"
)

func (p Platform) valid() bool {
	switch p {
	case PlatformPC, PlatformLinux, PlatformMacOS, PlatformPSP, PlatformPS3,
		PlatformPS4, PlatformPS5, PlatformXbox360, PlatformXboxOne,
		PlatformXboxSeriesX, PlatformNintendoSwitch, PlatformIOS,
		PlatformAndroid, PlatformWeb:
		return true
	}
	return false
}

// Status is the consumption state of a queue entry.
type Status string

const (
	StatusFinished   Status = "FINISHED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDropped    Status = "DROPPED"
	StatusPlanned    Status = "PLANNED"
)

// ParseStatus returns the Status for a request value.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusFinished, StatusInProgress, StatusDropped, StatusPlanned:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// AnimeDetails holds the anime-specific fields of a record.
type AnimeDetails struct {
	TranslatedTitle *string
	Episodes        *int
	IsOngoing       bool
	EndDate         *time.Time
}

// GameDetails holds the game-specific fields of a record.
type GameDetails struct {
	// Platforms the game is available on. Unmapped provider platform
	// names are dropped by the adapter before validation.
	Platforms []Platform
	Playtime  *int // minutes
	Stores    []string
}

// MovieDetails holds the movie-specific fields of a record.
type MovieDetails struct {
	Duration *int // minutes
}

// SeriesDetails holds the series-specific fields of a record.
type SeriesDetails struct {
	EpisodeDuration *int // minutes
	Episodes        *int
	IsOngoing       bool
}

// Record is a validated, provider-independent representation of one piece
// of content, ready for reconciliation against the catalog. Exactly one of
// the kind-specific detail groups must be set, matching Kind.
type Record struct {
	Kind        Kind
	Title       string
	Description *string
	Score       *float64 // 0.0 - 10.0, one decimal
	Popularity  *int     // >= 0
	ImageURL    *string
	AgeRating   *AgeRating
	Studios     []string
	ReleaseDate *time.Time
	Genres      []string
	Tags        []string

	Anime  *AnimeDetails
	Game   *GameDetails
	Movie  *MovieDetails
	Series *SeriesDetails
}

// Score normalizes a raw provider score to the 0-10 scale. Values above 10
// are interpreted as 0-100 scale and divided by 10.
func Score(v float64) *float64 {
	if v > 10 {
		v /= 10
	}
	return &v
}

// Popularity rounds a raw provider popularity to the nearest integer.
func Popularity(v float64) *int {
	p := int(math.Round(v))
	return &p
}

// Validate checks the record against the schema constraints and applies
// the defensive normalizations (score rescale, popularity rounding happens
// at construction via Popularity). It mutates the record in place where a
// rescale is needed and returns a *ValidationError on the first violation.
func (r *Record) Validate() error {
	if r.Title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if _, err := ParseKind(string(r.Kind)); err != nil {
		return &ValidationError{Field: "kind", Reason: err.Error()}
	}
	if r.Score != nil {
		// Second line of defense against 0-100 scale values that leaked
		// through an adapter unnormalized.
		if *r.Score > 10 {
			*r.Score /= 10
		}
		if *r.Score < 0 || *r.Score > 10 {
			return &ValidationError{
				Field:  "score",
				Reason: fmt.Sprintf("%.1f outside [0, 10]", *r.Score),
			}
		}
	}
	if r.Popularity != nil && *r.Popularity < 0 {
		return &ValidationError{
			Field:  "popularity",
			Reason: fmt.Sprintf("%d is negative", *r.Popularity),
		}
	}
	if r.AgeRating != nil && !r.AgeRating.valid() {
		return &ValidationError{
			Field:  "age_rating",
			Reason: fmt.Sprintf("unknown value %q", *r.AgeRating),
		}
	}
	return r.validateDetails()
}

func (r *Record) validateDetails() error {
	groups := 0
	if r.Anime != nil {
		groups++
	}
	if r.Game != nil {
		groups++
	}
	if r.Movie != nil {
		groups++
	}
	if r.Series != nil {
		groups++
	}
	if groups != 1 {
		return &ValidationError{Field: "details", Reason: "exactly one kind-specific detail group required"}
	}

	switch r.Kind {
	case KindAnime:
		if r.Anime == nil {
			return &ValidationError{Field: "anime", Reason: "missing detail group for kind anime"}
		}
	case KindGame:
		if r.Game == nil {
			return &ValidationError{Field: "game", Reason: "missing detail group for kind game"}
		}
		if r.Game.Platforms == nil {
			return &ValidationError{Field: "available_platforms", Reason: "required for games"}
		}
		for _, p := range r.Game.Platforms {
			if !p.valid() {
				return &ValidationError{
					Field:  "available_platforms",
					Reason: fmt.Sprintf("unknown platform %q", p),
				}
			}
		}
	case KindMovie:
		if r.Movie == nil {
			return &ValidationError{Field: "movie", Reason: "missing detail group for kind movie"}
		}
	case KindSeries:
		if r.Series == nil {
			return &ValidationError{Field: "series", Reason: "missing detail group for kind series"}
		}
	}
	return nil
}
