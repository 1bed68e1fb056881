package services

import (
	"fmt"
	"html"
	"strings"
	"time"

	"ibraflix/internal/models"
)

const (
	maxListResults  = 10
	maxOverviewRune = 200
)

// FormatMediaMessage renders a Telegram HTML list of media items.
func FormatMediaMessage(heading string, items []models.MediaItem) string {
	if len(items) == 0 {
		return "No titles found."
	}

	var message strings.Builder
	message.WriteString(fmt.Sprintf("<b>%s</b>\n\n", html.EscapeString(heading)))

	for i, item := range items {
		if i >= maxListResults {
			break
		}
		writeItem(&message, i+1, item)
		message.WriteString(fmt.Sprintf("/details %s %d\n\n", item.Kind(), item.ID))
	}

	return message.String()
}

// FormatWatchlistMessage renders the watchlist, oldest entry first.
func FormatWatchlistMessage(entries []models.WatchlistEntry) string {
	if len(entries) == 0 {
		return "Your watchlist is empty."
	}

	var message strings.Builder
	noun := "items"
	if len(entries) == 1 {
		noun = "item"
	}
	message.WriteString(fmt.Sprintf("<b>Watchlist</b> (%d %s)\n\n", len(entries), noun))

	for i, e := range entries {
		message.WriteString(fmt.Sprintf("%d. %s", i+1, html.EscapeString(e.DisplayTitle())))
		if year := e.Year(); year != "" {
			message.WriteString(fmt.Sprintf(" (%s)", year))
		}
		if e.AddedAt > 0 {
			message.WriteString(fmt.Sprintf(" · added %s", time.UnixMilli(e.AddedAt).UTC().Format("Jan 2, 2006")))
		}
		message.WriteString(fmt.Sprintf("\n/remove %d\n", e.ID))
	}

	return message.String()
}

// FormatDetailsMessage renders a single title with its cast and trailer.
func FormatDetailsMessage(d *Details) string {
	var message strings.Builder
	writeItem(&message, 0, d.Item)

	if d.Movie != nil {
		if rt := d.Movie.FormattedRuntime(); rt != "" {
			message.WriteString(fmt.Sprintf("Runtime: %s\n", rt))
		}
	}
	if len(d.Item.Genres) > 0 {
		names := make([]string, len(d.Item.Genres))
		for i, g := range d.Item.Genres {
			names[i] = g.Name
		}
		message.WriteString(fmt.Sprintf("Genres: %s\n", html.EscapeString(strings.Join(names, ", "))))
	}
	if len(d.Cast) > 0 {
		names := make([]string, len(d.Cast))
		for i, c := range d.Cast {
			names[i] = c.Name
		}
		message.WriteString(fmt.Sprintf("Cast: %s\n", html.EscapeString(strings.Join(names, ", "))))
	}
	if d.Trailer != nil {
		message.WriteString(fmt.Sprintf("<a href=\"https://www.youtube.com/watch?v=%s\">Watch trailer</a>\n", d.Trailer.Key))
	}

	if d.InWatchlist {
		message.WriteString(fmt.Sprintf("\nIn your watchlist. /remove %d", d.Item.ID))
	} else {
		message.WriteString(fmt.Sprintf("\n/add %s %d", d.Item.Kind(), d.Item.ID))
	}
	return message.String()
}

func writeItem(message *strings.Builder, n int, item models.MediaItem) {
	title := html.EscapeString(item.DisplayTitle())
	if n > 0 {
		message.WriteString(fmt.Sprintf("<b>%d. %s</b>", n, title))
	} else {
		message.WriteString(fmt.Sprintf("<b>%s</b>", title))
	}
	if year := item.Year(); year != "" {
		message.WriteString(fmt.Sprintf(" (%s)", year))
	}
	message.WriteString("\n")

	if item.VoteAverage > 0 {
		message.WriteString(fmt.Sprintf("Rating: %.1f\n", item.VoteAverage))
	}

	if item.Overview != "" {
		overview := []rune(item.Overview)
		if len(overview) > maxOverviewRune {
			overview = append(overview[:maxOverviewRune], []rune("...")...)
		}
		message.WriteString(fmt.Sprintf("%s\n", html.EscapeString(string(overview))))
	}
}
