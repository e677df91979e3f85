package catalog

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/tradelift/seogen/internal/model"
)

// XLSXOptions configures the XLSX parser.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
}

// ReadXLSX reads an XLSX sheet and returns all rows as string slices.
func ReadXLSX(path string, opts XLSXOptions) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("xlsx: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("xlsx: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}
	return f.Sheets[opts.SheetIndex], nil
}

// ImportServicesXLSX reads a service catalog from a spreadsheet. The first
// row must be a header containing at least a "name" column; "id" and
// "emergency" columns are optional. Missing IDs are slugified from the name.
func ImportServicesXLSX(path string, opts XLSXOptions) ([]model.Service, error) {
	rows, err := ReadXLSX(path, opts)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, eris.Errorf("xlsx: %s: empty sheet", path)
	}

	cols := indexColumns(rows[0])
	nameCol, ok := cols["name"]
	if !ok {
		return nil, eris.Errorf("xlsx: %s: header row missing %q column", path, "name")
	}

	var services []model.Service
	for _, row := range rows[1:] {
		name := strings.TrimSpace(cellAt(row, nameCol))
		if name == "" {
			continue
		}
		svc := model.Service{
			ID:        strings.TrimSpace(cellAt(row, colOr(cols, -1, "id", "service_id"))),
			Name:      name,
			Emergency: parseBoolCell(cellAt(row, colOr(cols, -1, "emergency", "is_emergency"))),
		}
		if svc.ID == "" {
			svc.ID = Slugify(name)
		}
		services = append(services, svc)
	}

	if err := ValidateServices(services); err != nil {
		return nil, err
	}
	return services, nil
}

// ImportLocationsXLSX reads a location catalog from a spreadsheet. The
// header row must contain "city" and "state" columns; "id" and
// "monthly_searches" are optional.
func ImportLocationsXLSX(path string, opts XLSXOptions) ([]model.Location, error) {
	rows, err := ReadXLSX(path, opts)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, eris.Errorf("xlsx: %s: empty sheet", path)
	}

	cols := indexColumns(rows[0])
	cityCol, ok := cols["city"]
	if !ok {
		return nil, eris.Errorf("xlsx: %s: header row missing %q column", path, "city")
	}
	stateCol, ok := cols["state"]
	if !ok {
		return nil, eris.Errorf("xlsx: %s: header row missing %q column", path, "state")
	}

	var locations []model.Location
	for i, row := range rows[1:] {
		city := strings.TrimSpace(cellAt(row, cityCol))
		if city == "" {
			continue
		}
		state := strings.TrimSpace(cellAt(row, stateCol))

		searches := 0
		if raw := strings.TrimSpace(cellAt(row, colOr(cols, -1, "monthly_searches", "monthly searches", "searches"))); raw != "" {
			// Marketing exports format volumes with thousands separators.
			searches, err = strconv.Atoi(strings.ReplaceAll(raw, ",", ""))
			if err != nil {
				return nil, eris.Wrapf(err, "xlsx: row %d: parse monthly searches %q", i+2, raw)
			}
		}

		loc := model.Location{
			ID:              strings.TrimSpace(cellAt(row, colOr(cols, -1, "id", "location_id"))),
			City:            city,
			State:           strings.ToUpper(state),
			MonthlySearches: searches,
		}
		if loc.ID == "" {
			loc.ID = LocationID(city, state)
		}
		locations = append(locations, loc)
	}

	if err := ValidateLocations(locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// indexColumns maps lowercased header names to column indexes.
func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols
}

func colOr(cols map[string]int, fallback int, names ...string) int {
	for _, n := range names {
		if i, ok := cols[n]; ok {
			return i
		}
	}
	return fallback
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func parseBoolCell(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1":
		return true
	}
	return false
}
