package tmdb

const (
	// DefaultPosterSize and DefaultBackdropSize match what list and detail
	// views display; "original" is never needed.
	DefaultPosterSize   = "w500"
	DefaultBackdropSize = "w1280"

	PosterPlaceholder   = "https://placehold.co/500x750/1A1A2E/8B8B8B?text=No+Poster"
	BackdropPlaceholder = "https://placehold.co/1280x720/1A1A2E/8B8B8B?text=No+Image"
)

// PosterURL returns the full poster image URL, or a placeholder when the
// movie has no poster. Size can be: w92, w154, w185, w342, w500, w780, original.
func (c *Client) PosterURL(path *string, size string) string {
	if size == "" {
		size = DefaultPosterSize
	}
	return imageURL(c.imageBaseURL, path, size, PosterPlaceholder)
}

// BackdropURL returns the full backdrop image URL, or a placeholder.
// Size can be: w300, w780, w1280, original.
func (c *Client) BackdropURL(path *string, size string) string {
	if size == "" {
		size = DefaultBackdropSize
	}
	return imageURL(c.imageBaseURL, path, size, BackdropPlaceholder)
}

func imageURL(base string, path *string, size, placeholder string) string {
	if path == nil || *path == "" {
		return placeholder
	}
	return base + "/" + size + *path
}
