package generation

import (
	"regexp"
	"strings"
	"time"
)

const maxSlugLen = 100

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a title.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLen {
		slug = strings.Trim(slug[:maxSlugLen], "-")
	}
	return slug
}

// datedSlug appends the generation date, so the same title only collides
// when regenerated within the same day.
func datedSlug(title string, day time.Time) string {
	return Slugify(title) + "-" + day.UTC().Format("2006-01-02")
}
