package dataset

// Fixed columns.
const (
	ColTitle      = "Title"
	ColIMDB       = "IMDB_Rating"
	ColMetascore  = "Metascore"
	ColRT         = "RT_Score"
	ColBoxOffice  = "Box_Office"
	ColReleaseDay = "Release_Day"
)

// Indicator column prefixes.
const (
	PrefixNominated = "Oscar_Nominated_"
	PrefixWon       = "Oscar_Won_"
	PrefixAdvisory  = "Rating_"
	PrefixGenre     = "Genre_"
	PrefixDirector  = "Director_"
	PrefixWriter    = "Writer_"
)

// AdvisoryCategories are the standard advisory ratings, in display order.
var AdvisoryCategories = []string{"G", "PG", "PG-13", "R", "NC-17"}

// RatingRange is the valid value range of a rating scale.
type RatingRange struct {
	Min, Max float64
}

// RatingRanges maps each rating column to its scale.
var RatingRanges = map[string]RatingRange{
	ColIMDB:      {0, 10},
	ColMetascore: {0, 100},
	ColRT:        {0, 100},
}

// missingMarkers are the cell values read as NaN.
var missingMarkers = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
}
