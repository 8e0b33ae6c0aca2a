// Package roster reads the placement-eligible roll numbers out of the
// spreadsheet the college office maintains.
package roster

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DefaultColumn is the header the office spreadsheet uses for roll numbers.
const DefaultColumn = "roll_number"

// Parser extracts roll numbers from an xlsx roster.
type Parser struct {
	// Sheet to read. Empty means the first sheet in the workbook.
	Sheet string
	// Column is the header name of the roll number column.
	Column string
}

func NewParser(sheet, column string) *Parser {
	if column == "" {
		column = DefaultColumn
	}
	return &Parser{Sheet: sheet, Column: column}
}

// Parse returns the deduplicated, trimmed roll numbers from the roster.
// Row order is preserved for the first occurrence of each roll number.
func (p *Parser) Parse(r io.Reader) ([]string, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer file.Close()

	sheetName := p.Sheet
	if sheetName == "" {
		sheets := file.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheetName = sheets[0]
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows from sheet %q: %w", sheetName, err)
	}

	if len(rows) < 2 { // Header + at least one data row
		return nil, fmt.Errorf("sheet %q has no data rows", sheetName)
	}

	// Header match is case-insensitive.
	column := strings.ToLower(strings.TrimSpace(p.Column))
	columnIdx := -1
	for i, col := range rows[0] {
		if strings.ToLower(strings.TrimSpace(col)) == column {
			columnIdx = i
			break
		}
	}
	if columnIdx == -1 {
		return nil, fmt.Errorf("missing required column: %s", p.Column)
	}

	seen := make(map[string]struct{})
	var rollNumbers []string
	for _, row := range rows[1:] {
		if columnIdx >= len(row) {
			continue
		}
		rollNumber := strings.TrimSpace(row[columnIdx])
		if rollNumber == "" {
			continue
		}
		if _, dup := seen[rollNumber]; dup {
			continue
		}
		seen[rollNumber] = struct{}{}
		rollNumbers = append(rollNumbers, rollNumber)
	}

	if len(rollNumbers) == 0 {
		return nil, fmt.Errorf("column %q has no roll numbers", p.Column)
	}

	return rollNumbers, nil
}
