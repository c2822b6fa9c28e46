// Package view filters, sorts and colours the record list the way the list screen shows it.
package view

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go-recordshop/internal/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortIDAsc        SortKey = "id-asc"
	SortIDDesc       SortKey = "id-desc"
	SortLastNameAsc  SortKey = "lastname-asc"
	SortLastNameDesc SortKey = "lastname-desc"
	SortFormatAsc    SortKey = "format-asc"
	SortFormatDesc   SortKey = "format-desc"
	SortGenreAsc     SortKey = "genre-asc"
	SortGenreDesc    SortKey = "genre-desc"
)

// SortKeys lists every accepted key, default first.
var SortKeys = []SortKey{
	SortIDAsc, SortIDDesc,
	SortLastNameAsc, SortLastNameDesc,
	SortFormatAsc, SortFormatDesc,
	SortGenreAsc, SortGenreDesc,
}

func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if k == "" {
		return SortIDAsc, nil
	}
	if !slices.Contains(SortKeys, k) {
		return "", fmt.Errorf("unknown sort %q", s)
	}
	return k, nil
}

// searchText is what the search box matches against.
func searchText(r model.Record) string {
	return strings.ToLower(strconv.Itoa(r.ID) + " " + r.CustomerID + " " + r.CustomerLastName + " " + r.Format + " " + r.Genre)
}

// Filter keeps records whose id, customer id, customer last name, format or genre
// contain query, ignoring case. A blank query keeps everything.
func Filter(records []model.Record, query string) []model.Record {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return slices.Clone(records)
	}
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if strings.Contains(searchText(r), q) {
			out = append(out, r)
		}
	}
	return out
}

// Sort returns a sorted copy. String keys are lower-cased and compared with an
// English collator, so "" sorts before any name. Equal keys keep their input order.
func Sort(records []model.Record, key SortKey) []model.Record {
	out := slices.Clone(records)
	col := collate.New(language.English)
	text := func(a, b string) int {
		return col.CompareString(strings.ToLower(a), strings.ToLower(b))
	}

	var compare func(a, b model.Record) int
	switch key {
	case SortIDAsc:
		compare = func(a, b model.Record) int { return cmp.Compare(a.ID, b.ID) }
	case SortIDDesc:
		compare = func(a, b model.Record) int { return cmp.Compare(b.ID, a.ID) }
	case SortLastNameAsc:
		compare = func(a, b model.Record) int { return text(a.CustomerLastName, b.CustomerLastName) }
	case SortLastNameDesc:
		compare = func(a, b model.Record) int { return text(b.CustomerLastName, a.CustomerLastName) }
	case SortFormatAsc:
		compare = func(a, b model.Record) int { return text(a.Format, b.Format) }
	case SortFormatDesc:
		compare = func(a, b model.Record) int { return text(b.Format, a.Format) }
	case SortGenreAsc:
		compare = func(a, b model.Record) int { return text(a.Genre, b.Genre) }
	case SortGenreDesc:
		compare = func(a, b model.Record) int { return text(b.Genre, a.Genre) }
	default:
		return out
	}

	slices.SortStableFunc(out, compare)
	return out
}

// Apply filters then sorts.
func Apply(records []model.Record, query string, key SortKey) []model.Record {
	return Sort(Filter(records, query), key)
}
