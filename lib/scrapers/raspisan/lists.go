package raspisan

import (
	"strings"

	"ibiassist-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/antzucaro/matchr"
)

// BasicItem is one selectable entry of a portal dropdown
// (education level, group or teacher).
type BasicItem struct {
	Id    string
	Label string
}

// ParseBasicList extracts the (value, label) pairs of the <option> children
// of the element with the given id. Options without a value attribute are
// skipped, a missing container yields an empty result.
func ParseBasicList(id, html string) []BasicItem {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var result []BasicItem
	doc.Find("#" + id + " > option").Each(func(_ int, option *goquery.Selection) {
		value, ok := option.Attr("value")
		if !ok {
			return
		}
		label, err := option.Html()
		if err != nil {
			return
		}
		result = append(result, BasicItem{
			Id:    value,
			Label: label,
		})
	})

	return result
}

// ResolveItem fuzzy-matches a human-entered name (group number, teacher
// surname) against a dropdown list, so CLI users don't have to know the
// portal's internal ids.
func ResolveItem(items []BasicItem, query string) (BasicItem, bool) {
	query = textutil.NormalizeName(query)
	if query == "" {
		return BasicItem{}, false
	}

	// an exact substring beats any fuzzy score
	for _, item := range items {
		if textutil.MatchName(item.Label, []string{query}) {
			return item, true
		}
	}

	var best BasicItem
	bestSimilarity := 0.0
	for _, item := range items {
		similarity := matchr.JaroWinkler(textutil.NormalizeName(item.Label), query, false)
		if similarity > bestSimilarity {
			bestSimilarity = similarity
			best = item
		}
	}

	if bestSimilarity < 0.75 {
		return BasicItem{}, false
	}
	return best, true
}
