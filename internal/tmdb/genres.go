package tmdb

// genreNames maps TMDB movie genre ids to display names.
var genreNames = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Sci-Fi",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

const maxGenreNames = 3

// GenreNames returns display names for the first three genre ids.
// Unknown ids map to "Unknown".
func GenreNames(ids []int) []string {
	n := min(len(ids), maxGenreNames)
	names := make([]string, 0, n)
	for _, id := range ids[:n] {
		name, ok := genreNames[id]
		if !ok {
			name = "Unknown"
		}
		names = append(names, name)
	}
	return names
}
