package dto

import (
	"strconv"

	"animehub/internal/catalog"
	"animehub/internal/web/models"
)

// GenreLink is one entry of the categories page.
type GenreLink struct {
	Name string
	Slug string
}

func GenreLinks(genres []string) []GenreLink {
	links := make([]GenreLink, 0, len(genres))
	for _, g := range genres {
		links = append(links, GenreLink{Name: g, Slug: catalog.Slug(g)})
	}
	return links
}

// AnimeView is the detail page's view of a catalog record.
type AnimeView struct {
	ID       string
	Title    string
	Genres   string
	Episodes int
}

func FromAnime(a catalog.Anime) AnimeView {
	return AnimeView{
		ID:       strconv.FormatInt(a.ID, 10),
		Title:    a.Title,
		Genres:   a.GenreList(),
		Episodes: a.Episodes,
	}
}

// ReviewView is one review as rendered on an anime page.
type ReviewView struct {
	ID        int64
	Username  string
	Content   string
	CreatedAt string
	Special   bool // written by the highlighted account
	Own       bool // written by the viewer, who may delete it
}

func FromReviews(reviews []models.Review, special, viewer string) []ReviewView {
	views := make([]ReviewView, 0, len(reviews))
	for _, r := range reviews {
		views = append(views, ReviewView{
			ID:        r.ID,
			Username:  r.Username,
			Content:   r.Content,
			CreatedAt: r.CreatedAt.Format("2006-01-02 15:04"),
			Special:   special != "" && r.Username == special,
			Own:       viewer != "" && r.Username == viewer,
		})
	}
	return views
}
