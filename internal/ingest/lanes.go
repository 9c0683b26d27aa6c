package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dom/league-skinset-finder/internal/domain"
)

// laneColumns is the column order of the draft position table after the
// champion cell.
var laneColumns = [...]domain.Lane{
	domain.LaneTop,
	domain.LaneJungle,
	domain.LaneMid,
	domain.LaneBot,
	domain.LaneSupport,
}

// ParseLanes reads the "list of champions by draft position" table. The first
// cell of each body row names the champion in its data-sort-value attribute;
// the next five cells are the lanes, and a lane counts when its cell carries a
// data-sort-value. Rows without any td (header rows) are skipped.
func ParseLanes(r io.Reader) (map[string]domain.LaneSet, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse lane table: %w", err)
	}

	lanes := make(map[string]domain.LaneSet)
	var parseErr error
	doc.Find("tbody > tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() == 0 {
			return true
		}

		name, ok := cells.First().Attr("data-sort-value")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			parseErr = fmt.Errorf("lane table row %d: missing champion name", i)
			return false
		}
		if _, dup := lanes[name]; dup {
			parseErr = fmt.Errorf("lane table row %d: %w: %q", i, domain.ErrDuplicateChampion, name)
			return false
		}

		var set domain.LaneSet
		cells.Slice(1, goquery.ToEnd).EachWithBreak(func(col int, cell *goquery.Selection) bool {
			if col >= len(laneColumns) {
				return false
			}
			if _, present := cell.Attr("data-sort-value"); present {
				set = set.With(laneColumns[col])
			}
			return true
		})
		lanes[name] = set
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return lanes, nil
}
