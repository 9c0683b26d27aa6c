package ingest

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SkinsetTable is the parsed skin themes table.
type SkinsetTable struct {
	// Skinsets lists every set name, including sets no champion belongs to.
	Skinsets []string
	// Champions maps a champion name to the sets it has a skin in.
	Champions map[string][]string
}

// ParseSkinsets reads the skin themes table. The first row is the header. Each
// following row names its set in the text of the last th, and lists member
// champions as li > span elements with a data-champion attribute.
func ParseSkinsets(r io.Reader) (*SkinsetTable, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse skinset table: %w", err)
	}

	seenSets := make(map[string]bool)
	members := make(map[string]map[string]bool)

	var parseErr error
	doc.Find("tr").Slice(1, goquery.ToEnd).EachWithBreak(func(i int, row *goquery.Selection) bool {
		header := row.Find("th:last-of-type")
		if header.Length() == 0 {
			parseErr = fmt.Errorf("skinset table row %d: missing set name", i+1)
			return false
		}
		set := strings.TrimSpace(header.Last().Text())
		if set == "" {
			parseErr = fmt.Errorf("skinset table row %d: empty set name", i+1)
			return false
		}
		seenSets[set] = true

		row.Find("li > span").EachWithBreak(func(_ int, span *goquery.Selection) bool {
			champ, ok := span.Attr("data-champion")
			champ = strings.TrimSpace(champ)
			if !ok || champ == "" {
				parseErr = fmt.Errorf("skinset table row %d (%s): span without data-champion", i+1, set)
				return false
			}
			if members[champ] == nil {
				members[champ] = make(map[string]bool)
			}
			members[champ][set] = true
			return true
		})
		return parseErr == nil
	})
	if parseErr != nil {
		return nil, parseErr
	}

	table := &SkinsetTable{
		Skinsets:  sortedKeys(seenSets),
		Champions: make(map[string][]string, len(members)),
	}
	for champ, sets := range members {
		table.Champions[champ] = sortedKeys(sets)
	}
	return table, nil
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
