package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/huangsam/hotelpulse/schema"
	"github.com/xuri/excelize/v2"
)

// adsSheet is the reserved sheet name holding paid social results.
const adsSheet = "ads"

// loadWorkbook reads a bundle from an XLSX workbook.
//
// Every sheet is one section titled after the sheet. Row 1 holds "Series"
// followed by the period labels and an optional trailing "Color" column.
// Each following row is a series. A sheet whose rows are named Gross and
// Cancellation (and optionally Net) becomes a triplet section. A sheet
// named "Ads" holds the Spend, Clicks, Leads and Revenue rows instead.
func loadWorkbook(path string) (*Bundle, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var b Bundle
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
		}
		if len(rows) < 2 {
			continue
		}
		periods, colorCol := parseHeader(rows[0])
		if len(periods) == 0 {
			return nil, fmt.Errorf("sheet %s: header row has no periods", sheet)
		}

		if strings.EqualFold(strings.TrimSpace(sheet), adsSheet) {
			ads, err := parseAds(sheet, periods, rows[1:])
			if err != nil {
				return nil, err
			}
			b.Ads = ads
			continue
		}

		sec, err := parseSheet(sheet, periods, colorCol, rows[1:])
		if err != nil {
			return nil, err
		}
		b.Sections = append(b.Sections, sec)
	}

	b.normalize()
	if err := Validate(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// parseHeader returns the period labels and the index of the color column, or -1.
func parseHeader(header []string) ([]string, int) {
	colorCol := -1
	var periods []string
	for i, cell := range header {
		if i == 0 {
			continue
		}
		cell = strings.TrimSpace(cell)
		if strings.EqualFold(cell, "color") {
			colorCol = i
			break
		}
		if cell == "" {
			break
		}
		periods = append(periods, cell)
	}
	return periods, colorCol
}

func parseSheet(sheet string, periods []string, colorCol int, rows [][]string) (schema.Section, error) {
	sec := schema.Section{
		ID:      slugify(sheet),
		Title:   strings.TrimSpace(sheet),
		Kind:    schema.StackedKind,
		Periods: periods,
		Trend:   true,
	}

	var trip schema.Triplet
	for _, row := range rows {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		name := strings.TrimSpace(row[0])
		values, err := parseValues(row, len(periods))
		if err != nil {
			return schema.Section{}, fmt.Errorf("sheet %s, row %q: %w", sheet, name, err)
		}
		switch strings.ToLower(name) {
		case "gross":
			trip.Gross = values
		case "cancellation", "cancellations":
			trip.Cancellation = values
		case "net":
			trip.Net = values
		default:
			s := schema.Series{Name: name, Values: values}
			if colorCol > 0 && colorCol < len(row) {
				s.Color = strings.TrimSpace(row[colorCol])
			}
			sec.Series = append(sec.Series, s)
		}
	}

	if len(trip.Gross) > 0 && len(trip.Cancellation) > 0 {
		sec.Kind = schema.TripletKind
		sec.Triplet = trip
		sec.Series = nil
		sec.Trend = false
	}
	return sec, nil
}

func parseAds(sheet string, periods []string, rows [][]string) (*schema.AdCampaign, error) {
	ads := &schema.AdCampaign{Periods: periods}
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(row[0]))
		values, err := parseValues(row, len(periods))
		if err != nil {
			return nil, fmt.Errorf("sheet %s, row %q: %w", sheet, name, err)
		}
		switch name {
		case "spend":
			ads.Spend = values
		case "clicks":
			ads.Clicks = values
		case "leads":
			ads.Leads = values
		case "revenue":
			ads.Revenue = values
		}
	}
	return ads, nil
}

// parseValues reads n numeric cells after the name column. Blank cells are zero.
func parseValues(row []string, n int) ([]float64, error) {
	values := make([]float64, n)
	for i := range n {
		col := i + 1
		if col >= len(row) {
			break
		}
		cell := strings.TrimSpace(row[col])
		cell = strings.TrimPrefix(cell, "$")
		cell = strings.ReplaceAll(cell, ",", "")
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", row[col])
		}
		values[i] = v
	}
	return values, nil
}

// slugify turns a sheet name into a section id.
func slugify(name string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			dash = false
		case sb.Len() > 0 && !dash:
			sb.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
