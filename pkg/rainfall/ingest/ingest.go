package ingest

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"rwh/entities"
)

const maxBodyBytes = 1500000

// FromURL scrapes an HTML page for rainfall tables. Rows need a state cell
// and an annual-mm cell; a city/district column is used when present.
// Column meaning is taken from the table header, matched loosely.
func FromURL(pageURL string) ([]entities.RainfallNormal, error) {
	httpc := &http.Client{Timeout: 20 * time.Second}
	resp, err := httpc.Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch rainfall page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch rainfall page: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("parse rainfall page: %w", err)
	}

	var out []entities.RainfallNormal
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		rows := parseTable(table, pageURL)
		if len(rows) > 0 {
			out = rows
			return false // first recognizable table wins
		}
		return true
	})
	if len(out) == 0 {
		return nil, fmt.Errorf("no rainfall table recognized at %s", pageURL)
	}
	return out, nil
}

func parseTable(table *goquery.Selection, sourceURL string) []entities.RainfallNormal {
	stateCol, cityCol, mmCol := -1, -1, -1
	table.Find("tr").First().Find("th, td").Each(func(i int, cell *goquery.Selection) {
		h := strings.ToLower(strings.TrimSpace(cell.Text()))
		switch {
		case strings.Contains(h, "state") || strings.Contains(h, "province"):
			stateCol = i
		case strings.Contains(h, "city") || strings.Contains(h, "district"):
			cityCol = i
		case strings.Contains(h, "annual") || strings.Contains(h, "rainfall"):
			mmCol = i
		}
	})
	if stateCol == -1 || mmCol == -1 {
		return nil
	}

	var out []entities.RainfallNormal
	table.Find("tr").Each(func(ri int, row *goquery.Selection) {
		if ri == 0 {
			return
		}
		cells := row.Find("td")
		text := func(idx int) string {
			if idx < 0 || idx >= cells.Length() {
				return ""
			}
			return strings.TrimSpace(cells.Eq(idx).Text())
		}
		mmRaw := strings.NewReplacer(",", "", "mm", "").Replace(text(mmCol))
		mm, err := strconv.ParseFloat(strings.TrimSpace(mmRaw), 64)
		if err != nil || mm <= 0 || text(stateCol) == "" {
			return
		}
		out = append(out, entities.RainfallNormal{
			State:     text(stateCol),
			City:      text(cityCol),
			AnnualMM:  mm,
			SourceURL: sourceURL,
		})
	})
	return out
}
