package catalog

import "strings"

// genre display name -> URL slug, for genres whose name is not already URL safe
var genreSlugs = map[string]string{
	"slice of life": "sliceoflife",
	"sci-fi":        "scifi",
	"time travel":   "timetravel",
	"gag humor":     "gaghumor",
}

var slugGenres = func() map[string]string {
	m := make(map[string]string, len(genreSlugs))
	for name, slug := range genreSlugs {
		m[slug] = name
	}
	return m
}()

// ResolveSlug maps a URL slug to the genre name it stands for.
// Slugs without an alias are returned unchanged.
func ResolveSlug(slug string) string {
	key := strings.ToLower(strings.ReplaceAll(slug, " ", ""))
	if name, ok := slugGenres[key]; ok {
		return name
	}
	return slug
}

// Slug builds the URL slug for a genre name.
func Slug(genre string) string {
	key := strings.ToLower(strings.TrimSpace(genre))
	if slug, ok := genreSlugs[key]; ok {
		return slug
	}
	return strings.ReplaceAll(key, " ", "")
}

// GenreForSlug resolves a slug through the alias table and then against the
// genres present in the catalog, so "martialarts" finds "Martial Arts".
func (c *Catalog) GenreForSlug(slug string) string {
	name := ResolveSlug(slug)
	if name != slug {
		return name
	}
	key := Slug(slug)
	for _, g := range c.genres {
		if Slug(g) == key {
			return g
		}
	}
	return slug
}
