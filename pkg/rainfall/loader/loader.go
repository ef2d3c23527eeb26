package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"rwh/entities"
)

var monthHeads = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

func normHead(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\ufeff") // BOM
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

type columns struct {
	state, city, annual, zone int
	months                    [12]int
}

func mapColumns(head []string) (columns, error) {
	hmap := map[string]int{}
	for i, h := range head {
		hmap[normHead(h)] = i
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[normHead(k)]; ok {
				return idx
			}
		}
		return -1
	}

	c := columns{
		state:  findAny("state", "province", "region"),
		city:   findAny("city", "district", "town"),
		annual: findAny("annual_mm", "annual_rainfall_mm", "rainfall_mm", "annual"),
		zone:   findAny("climate_zone", "zone"),
	}
	if c.state == -1 || c.annual == -1 {
		return c, fmt.Errorf("rainfall dataset missing required columns, found headers: %v (need at least state, annual_mm)", head)
	}
	for m, name := range monthHeads {
		c.months[m] = findAny(name, name+"_mm", name+"_weight")
	}
	return c, nil
}

func rowToNormal(c columns, rec []string) (entities.RainfallNormal, bool) {
	get := func(idx int) string {
		if idx < 0 || idx >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[idx])
	}

	annual, _ := strconv.ParseFloat(get(c.annual), 64)
	if annual <= 0 {
		return entities.RainfallNormal{}, false // skip invalid rows
	}
	n := entities.RainfallNormal{
		State:    get(c.state),
		City:     get(c.city),
		AnnualMM: annual,
		Zone:     get(c.zone),
	}

	// monthly columns may carry mm totals or weights; normalize to weights
	var vals [12]float64
	var sum float64
	complete := true
	for m := 0; m < 12; m++ {
		v, err := strconv.ParseFloat(get(c.months[m]), 64)
		if err != nil || v < 0 {
			complete = false
			break
		}
		vals[m] = v
		sum += v
	}
	if complete && sum > 0 {
		n.MonthlyWeights = make([]float64, 12)
		for m := 0; m < 12; m++ {
			n.MonthlyWeights[m] = vals[m] / sum
		}
	}
	return n, true
}

// LoadCSV reads a rainfall climatology dataset. Header names are matched
// loosely (case, spaces, underscores) so exported government sheets load
// without manual cleanup.
func LoadCSV(path string) ([]entities.RainfallNormal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	head, err := cr.Read()
	if err != nil {
		return nil, err
	}
	cols, err := mapColumns(head)
	if err != nil {
		return nil, err
	}

	var out []entities.RainfallNormal
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if n, ok := rowToNormal(cols, rec); ok {
			out = append(out, n)
		}
	}
	return out, nil
}

// LoadXLSX reads the same dataset shape from the first sheet of a workbook
// (or a named sheet when given).
func LoadXLSX(path, sheet string) ([]entities.RainfallNormal, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer x.Close()

	if sheet == "" {
		sheets := x.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := x.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheet)
	}
	cols, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}
	var out []entities.RainfallNormal
	for _, rec := range rows[1:] {
		if n, ok := rowToNormal(cols, rec); ok {
			out = append(out, n)
		}
	}
	return out, nil
}
