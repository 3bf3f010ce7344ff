package excelimport

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// MaxFileSize is the largest workbook accepted for import
const MaxFileSize = 10 << 20 // 10 MiB

// Parser reads the first sheet of an xlsx workbook row by row
type Parser struct {
	headers   []string
	headerMap map[string]int
	rows      [][]string
	next      int
}

// NewParser opens a workbook from raw bytes and reads its first sheet.
// The first row is treated as the header row; header names are
// normalized to lower case.
func NewParser(data []byte) (*Parser, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidFile
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, ErrEmptyFile
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, ErrMissingHeader
	}

	parser := &Parser{
		headerMap: make(map[string]int),
		rows:      rows[1:],
	}
	for i, h := range rows[0] {
		header := normalizeHeader(h)
		if header == "" {
			continue
		}
		parser.headers = append(parser.headers, header)
		parser.headerMap[header] = i
	}
	if len(parser.headers) == 0 {
		return nil, ErrMissingHeader
	}

	return parser, nil
}

func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}

// Headers returns the normalized header names
func (p *Parser) Headers() []string {
	return p.headers
}

// HasHeader checks if a header exists
func (p *Parser) HasHeader(name string) bool {
	_, ok := p.headerMap[name]
	return ok
}

// ValidateHeaders returns the required headers missing from the sheet
func (p *Parser) ValidateHeaders(required []string) []string {
	var missing []string
	for _, h := range required {
		if !p.HasHeader(h) {
			missing = append(missing, h)
		}
	}
	return missing
}

// Row is a parsed sheet row. LineNumber is the 1-indexed sheet row, so
// the first data row is row 2.
type Row struct {
	LineNumber int
	Data       map[string]string
}

// Get returns the trimmed value for a column by header name
func (r *Row) Get(header string) string {
	return r.Data[header]
}

// IsEmpty returns true if the row has no non-empty values
func (r *Row) IsEmpty() bool {
	for _, v := range r.Data {
		if v != "" {
			return false
		}
	}
	return true
}

// ReadAllRows returns every non-empty data row of the sheet
func (p *Parser) ReadAllRows() []*Row {
	var out []*Row
	for i, raw := range p.rows {
		row := &Row{
			LineNumber: i + 2,
			Data:       make(map[string]string, len(p.headers)),
		}
		for _, header := range p.headers {
			row.Data[header] = cellValue(raw, p.headerMap[header])
		}
		if row.IsEmpty() {
			continue
		}
		out = append(out, row)
	}
	return out
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
