// scraper/csv_parser.go
package scraper

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gewnthar/phonemodels/models"
	"github.com/jszwec/csvutil"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseTable reads a CSV document with a header line into a generic table.
// Every column the source defines is kept, in order. Short rows are padded
// with missing values; rows wider than the header are an error.
// Duplicate header names get a ".N" suffix so every column name is unique.
func ParseTable(reader io.Reader) (*models.Table, error) {
	r := newCSVReader(reader)

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV data is empty: no header line")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	table := &models.Table{Columns: dedupeColumns(header)}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record %d: %w", len(table.Rows)+1, err)
		}
		if len(record) > len(header) {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("CSV line %d: expected %d fields, saw %d", line, len(header), len(record))
		}

		row := make(models.Row, len(header))
		for i, v := range record {
			row[i] = models.NullableString(v)
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// ParsePhoneModels decodes the eight schema columns of the dataset into typed rows.
// Extra source columns are ignored and short rows decode with empty trailing fields,
// the same input ParseTable accepts.
func ParsePhoneModels(reader io.Reader) ([]models.PhoneModel, error) {
	var phoneModels []models.PhoneModel

	decoder, err := csvutil.NewDecoder(&paddedReader{r: newCSVReader(reader)})
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder for phone models: %w", err)
	}

	if err := decoder.Decode(&phoneModels); err != nil {
		return nil, fmt.Errorf("failed to decode phone model CSV data: %w", err)
	}
	return phoneModels, nil
}

// newCSVReader accepts variable-width records and bare quotes inside unquoted
// fields, e.g. `Smart TV 55" 4K`.
func newCSVReader(reader io.Reader) *csv.Reader {
	r := csv.NewReader(skipBOM(reader))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r
}

// paddedReader feeds csvutil the same shape ParseTable builds: a de-duplicated
// header and records padded to the header width.
type paddedReader struct {
	r     *csv.Reader
	width int
}

func (p *paddedReader) Read() ([]string, error) {
	record, err := p.r.Read()
	if err != nil {
		return nil, err
	}
	if p.width == 0 {
		p.width = len(record)
		return dedupeColumns(record), nil
	}
	for len(record) < p.width {
		record = append(record, "")
	}
	return record, nil
}

// dedupeColumns renames repeated header names the way the dataset tooling
// does: the second "a" becomes "a.1" and the third "a.2". A generated name
// that is already taken gets suffixed again.
func dedupeColumns(header []string) []string {
	columns := make([]string, len(header))
	counts := make(map[string]int, len(header))
	for i, name := range header {
		n := counts[name]
		for n > 0 {
			counts[name] = n + 1
			name = name + "." + strconv.Itoa(n)
			n = counts[name]
		}
		columns[i] = name
		counts[name] = n + 1
	}
	return columns
}

func skipBOM(reader io.Reader) io.Reader {
	br := bufio.NewReader(reader)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		br.Discard(len(utf8BOM))
	}
	return br
}
