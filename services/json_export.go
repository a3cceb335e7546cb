// services/json_export.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gewnthar/phonemodels/models"
)

// MarshalRowObjects renders table as a compact JSON array with one object per row.
// Object keys follow the column order, missing values become null, and
// non-ASCII text and HTML characters are written verbatim.
func MarshalRowObjects(table *models.Table) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(64 * (len(table.Rows) + 1))

	keys := make([][]byte, len(table.Columns))
	for i, col := range table.Columns {
		k, err := encodeJSONString(col)
		if err != nil {
			return nil, fmt.Errorf("failed to encode column name %q: %w", col, err)
		}
		keys[i] = k
	}

	buf.WriteByte('[')
	for r, row := range table.Rows {
		if r > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for i, key := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.Write(key)
			buf.WriteByte(':')
			if i >= len(row) || !row[i].Valid {
				buf.WriteString("null")
				continue
			}
			v, err := encodeJSONString(row[i].String)
			if err != nil {
				return nil, fmt.Errorf("failed to encode row %d column %q: %w", r+1, table.Columns[i], err)
			}
			buf.Write(v)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')

	return buf.Bytes(), nil
}

func encodeJSONString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
