// Package catalog holds the anime spreadsheet loaded at startup.
//
// A Catalog is built once and never modified afterwards, so it is safe to
// share between concurrent requests without locking.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Spreadsheet column positions.
const (
	colTitle      = 0
	colFirstGenre = 2
	colLastGenre  = 7
	colEpisodes   = 10
	colID         = 12
)

var ErrMalformed = errors.New("malformed catalog")

// Anime is one row of the spreadsheet.
type Anime struct {
	ID       int64
	Title    string
	Genres   []string // display capitalization, absent cells skipped
	Episodes int
}

// GenreList joins the genres for display.
func (a Anime) GenreList() string {
	return strings.Join(a.Genres, ", ")
}

// Result is one row of a genre search.
type Result struct {
	Title    string
	Genres   string
	ID       string
	Episodes int
}

type Catalog struct {
	records []Anime
	byID    map[int64]int
	byGenre map[string][]int // lowercased genre -> row indexes in dataset order
	genres  []string         // distinct display names, first appearance order
}

// Load reads the spreadsheet at path.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse reads a header row followed by one anime per row.
func Parse(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: missing header row", ErrMalformed)
	}

	c := &Catalog{
		records: make([]Anime, 0, len(rows)-1),
		byID:    make(map[int64]int, len(rows)-1),
		byGenre: make(map[string][]int),
	}

	for i, row := range rows[1:] {
		line := i + 2
		anime, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
		}
		if _, dup := c.byID[anime.ID]; dup {
			return nil, fmt.Errorf("%w: line %d: duplicate id %d", ErrMalformed, line, anime.ID)
		}
		c.add(anime)
	}

	return c, nil
}

func (c *Catalog) add(anime Anime) {
	idx := len(c.records)
	c.records = append(c.records, anime)
	c.byID[anime.ID] = idx

	seen := make(map[string]bool, len(anime.Genres))
	for _, g := range anime.Genres {
		key := strings.ToLower(g)
		if seen[key] {
			continue
		}
		seen[key] = true
		if _, known := c.byGenre[key]; !known {
			c.genres = append(c.genres, g)
		}
		c.byGenre[key] = append(c.byGenre[key], idx)
	}
}

func parseRow(row []string) (Anime, error) {
	if len(row) <= colID {
		return Anime{}, fmt.Errorf("expected at least %d columns, got %d", colID+1, len(row))
	}

	id, err := parseWhole(row[colID])
	if err != nil {
		return Anime{}, fmt.Errorf("id: %v", err)
	}

	episodes := 0
	if cell := strings.TrimSpace(row[colEpisodes]); cell != "" {
		n, err := parseWhole(cell)
		if err != nil {
			return Anime{}, fmt.Errorf("episodes: %v", err)
		}
		episodes = int(n)
	}

	var genres []string
	for _, cell := range row[colFirstGenre : colLastGenre+1] {
		if g := strings.TrimSpace(cell); g != "" {
			genres = append(genres, g)
		}
	}

	return Anime{
		ID:       id,
		Title:    strings.TrimSpace(row[colTitle]),
		Genres:   genres,
		Episodes: episodes,
	}, nil
}

// parseWhole accepts "12" as well as the "12.0" a spreadsheet export produces.
func parseWhole(cell string) (int64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, errors.New("empty value")
	}
	if n, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a whole number", cell)
	}
	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("%q is out of range", cell)
	}
	return int64(f), nil
}

// All returns every record in dataset order.
func (c *Catalog) All() []Anime {
	out := make([]Anime, len(c.records))
	copy(out, c.records)
	return out
}

func (c *Catalog) Len() int {
	return len(c.records)
}

func (c *Catalog) ByID(id int64) (Anime, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Anime{}, false
	}
	return c.records[idx], true
}

// Genres lists each distinct genre once, in order of first appearance.
func (c *Catalog) Genres() []string {
	out := make([]string, len(c.genres))
	copy(out, c.genres)
	return out
}

// Search returns every record tagged with genre, compared case-insensitively,
// in dataset order.
func (c *Catalog) Search(genre string) []Result {
	rows := c.byGenre[strings.ToLower(strings.TrimSpace(genre))]
	results := make([]Result, 0, len(rows))
	for _, idx := range rows {
		a := c.records[idx]
		results = append(results, Result{
			Title:    a.Title,
			Genres:   a.GenreList(),
			ID:       strconv.FormatInt(a.ID, 10),
			Episodes: a.Episodes,
		})
	}
	return results
}
