package fetch

import "github.com/altbier/mediatrack/media"

// certificationMap translates TMDB certification strings to the internal
// age rating. Covers US MPAA, RU numeric and US TV vocabularies; "NR" and
// anything else unmapped resolves to no rating.
var certificationMap = map[string]media.AgeRating{
	// US
	"G":     media.AgeRatingG,
	"PG":    media.AgeRatingPG,
	"PG-13": media.AgeRatingPG13,
	"R":     media.AgeRatingR,
	"NC-17": media.AgeRatingNC17,
	// RU
	"0+":  media.AgeRatingG,
	"6+":  media.AgeRatingPG,
	"12+": media.AgeRatingPG13,
	"16+": media.AgeRatingR,
	"18+": media.AgeRatingNC17,
	// US TV
	"TV-Y":     media.AgeRatingG,
	"TV-Y7":    media.AgeRatingG,
	"TV-Y7-FV": media.AgeRatingG,
	"TV-G":     media.AgeRatingG,
	"TV-PG":    media.AgeRatingPG,
	"TV-14":    media.AgeRatingPG13,
	"TV-MA":    media.AgeRatingR,
}

// certificationRegions is the fixed priority list of region codes the
// movie and series adapters consult. The first region yielding a non-empty
// certification wins.
var certificationRegions = []string{"US", "RU"}

// mapCertification resolves a certification string against the table.
// Unmapped strings yield no rating rather than an error.
func mapCertification(cert string) *media.AgeRating {
	if r, ok := certificationMap[cert]; ok {
		return &r
	}
	return nil
}
