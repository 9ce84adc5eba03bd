// Package tmdb provides a client for The Movie Database API.
package tmdb

import "strconv"

// Movie is the list-level movie record returned by trending and search.
// It is also the entry persisted in the favorites document, so field names
// follow the TMDB payload exactly.
type Movie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	PosterPath       *string `json:"poster_path"`   // "/abc123.jpg", may be null
	BackdropPath     *string `json:"backdrop_path"` // may be null
	ReleaseDate      string  `json:"release_date"`  // "2024-03-01"
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	GenreIDs         []int   `json:"genre_ids"`
	Adult            bool    `json:"adult"`
	OriginalLanguage string  `json:"original_language"`
	Video            bool    `json:"video"`
}

// MovieDetails is the full record returned by /movie/{id}.
type MovieDetails struct {
	Movie
	Budget              int64               `json:"budget"`
	Genres              []Genre             `json:"genres"`
	Homepage            string              `json:"homepage"`
	IMDBID              *string             `json:"imdb_id"` // e.g., "tt0133093"
	ProductionCompanies []ProductionCompany `json:"production_companies"`
	ProductionCountries []ProductionCountry `json:"production_countries"`
	Revenue             int64               `json:"revenue"`
	Runtime             *int                `json:"runtime"` // minutes
	SpokenLanguages     []SpokenLanguage    `json:"spoken_languages"`
	Status              string              `json:"status"`
	Tagline             string              `json:"tagline"`
}

// Genre represents a movie genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type ProductionCompany struct {
	ID            int64   `json:"id"`
	LogoPath      *string `json:"logo_path"`
	Name          string  `json:"name"`
	OriginCountry string  `json:"origin_country"`
}

type ProductionCountry struct {
	ISO3166_1 string `json:"iso_3166_1"`
	Name      string `json:"name"`
}

type SpokenLanguage struct {
	EnglishName string `json:"english_name"`
	ISO639_1    string `json:"iso_639_1"`
	Name        string `json:"name"`
}

// MovieList is a page of movies from trending or search.
type MovieList struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// Video is a trailer, teaser or clip attached to a movie.
type Video struct {
	ID          string `json:"id"`
	ISO639_1    string `json:"iso_639_1"`
	ISO3166_1   string `json:"iso_3166_1"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Site        string `json:"site"` // "YouTube", "Vimeo"
	Size        int    `json:"size"`
	Type        string `json:"type"` // "Trailer", "Teaser", "Clip", ...
	Official    bool   `json:"official"`
	PublishedAt string `json:"published_at"`
}

// VideoList is the response of /movie/{id}/videos.
type VideoList struct {
	ID      int64   `json:"id"`
	Results []Video `json:"results"`
}

// TimeWindow selects the trending period.
type TimeWindow string

const (
	WindowDay  TimeWindow = "day"
	WindowWeek TimeWindow = "week"
)

// Valid reports whether w is a window TMDB understands.
func (w TimeWindow) Valid() bool {
	return w == WindowDay || w == WindowWeek
}

// Year extracts the year from ReleaseDate.
func (m *Movie) Year() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// Summary returns the list-level record for d. Detail responses carry
// genres as objects, so GenreIDs is rebuilt from them.
func (d *MovieDetails) Summary() Movie {
	m := d.Movie
	if len(m.GenreIDs) == 0 && len(d.Genres) > 0 {
		m.GenreIDs = make([]int, len(d.Genres))
		for i, g := range d.Genres {
			m.GenreIDs[i] = g.ID
		}
	}
	return m
}
