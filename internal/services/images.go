package services

import "fmt"

// placeholderImage is shown wherever TMDb has no artwork.
const placeholderImage = "data:image/svg+xml;base64,PHN2ZyB3aWR0aD0iMzAwIiBoZWlnaHQ9IjQ1MCIgeG1sbnM9Imh0dHA6Ly93d3cudzMub3JnLzIwMDAvc3ZnIj48cmVjdCB3aWR0aD0iMzAwIiBoZWlnaHQ9IjQ1MCIgZmlsbD0iIzJhMmEyYSIvPjx0ZXh0IHg9IjUwJSIgeT0iNTAlIiBmb250LWZhbWlseT0iQXJpYWwiIGZvbnQtc2l6ZT0iMTgiIGZpbGw9IiM4ODg4ODgiIHRleHQtYW5jaG9yPSJtaWRkbGUiIGR5PSIuM2VtIj5ObyBJbWFnZTwvdGV4dD48L3N2Zz4="

type ImageSize string

const (
	PosterW342       ImageSize = "w342"
	PosterW500       ImageSize = "w500"
	BackdropW1280    ImageSize = "w1280"
	BackdropOriginal ImageSize = "original"
	ProfileW185      ImageSize = "w185"
	ProfileW342      ImageSize = "w342"
)

func (c *Client) PosterURL(path string, size ImageSize) string {
	if size != PosterW342 {
		size = PosterW500
	}
	return c.image(path, size)
}

func (c *Client) BackdropURL(path string, size ImageSize) string {
	if size != BackdropOriginal {
		size = BackdropW1280
	}
	return c.image(path, size)
}

func (c *Client) ProfileURL(path string, size ImageSize) string {
	if size != ProfileW342 {
		size = ProfileW185
	}
	return c.image(path, size)
}

func (c *Client) image(path string, size ImageSize) string {
	if path == "" {
		return placeholderImage
	}
	return fmt.Sprintf("%s/%s%s", c.imageURL, size, path)
}
