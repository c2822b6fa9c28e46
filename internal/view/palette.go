package view

import (
	"fmt"
	"strconv"
	"strings"

	"go-recordshop/internal/model"
)

// UnknownGenre stands in for a blank genre.
const UnknownGenre = "Unknown"

// DefaultPalette holds the row background colours, assigned to genres in first-seen order.
var DefaultPalette = []string{
	"#FDE68A", // yellow
	"#BFDBFE", // blue
	"#BBF7D0", // green
	"#FBCFE8", // pink
	"#DDD6FE", // purple
	"#FED7AA", // orange
	"#CFFAFE", // cyan
	"#E5E7EB", // gray
}

// HeaderColor is the dark header background used by every rendering.
const HeaderColor = "#111827"

// GenreKey normalises a genre for colour lookup.
func GenreKey(genre string) string {
	g := strings.TrimSpace(genre)
	if g == "" {
		return UnknownGenre
	}
	return g
}

// GenreColors maps genres to colours.
type GenreColors struct {
	colors map[string]string
	order  []string
}

// BuildGenreColors walks records in order; each new genre takes the next palette colour,
// wrapping around when there are more genres than colours.
func BuildGenreColors(records []model.Record, palette []string) *GenreColors {
	gc := &GenreColors{colors: make(map[string]string)}
	if len(palette) == 0 {
		return gc
	}
	for _, r := range records {
		g := GenreKey(r.Genre)
		if _, ok := gc.colors[g]; ok {
			continue
		}
		gc.colors[g] = palette[len(gc.order)%len(palette)]
		gc.order = append(gc.order, g)
	}
	return gc
}

// Color returns the colour for genre, white when the genre was never seen.
func (gc *GenreColors) Color(genre string) string {
	if c, ok := gc.colors[GenreKey(genre)]; ok {
		return c
	}
	return "#FFFFFF"
}

// Genres returns the genres in the order they received colours.
func (gc *GenreColors) Genres() []string {
	out := make([]string, len(gc.order))
	copy(out, gc.order)
	return out
}

// HexToRGB parses "#RRGGBB" or "RRGGBB".
func HexToRGB(hex string) (r, g, b int, err error) {
	clean := strings.TrimPrefix(hex, "#")
	if len(clean) != 6 {
		return 0, 0, 0, fmt.Errorf("bad colour %q", hex)
	}
	v, err := strconv.ParseUint(clean, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("bad colour %q: %w", hex, err)
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF), nil
}
