// models/phone_model.go
package models

import "database/sql"

// PhoneModelColumns is the fixed schema of the phone_models table, in column order.
var PhoneModelColumns = []string{
	"model", "dtype", "brand", "brand_title", "code", "code_alias", "model_name", "ver_name",
}

// PhoneModel represents one row of the MobileModels models.csv dataset.
// CSV tags match the dataset headers exactly.
type PhoneModel struct {
	Model      string `csv:"model" db:"model"`
	DType      string `csv:"dtype" db:"dtype"` // e.g. "phone", "pad", "tv"
	Brand      string `csv:"brand" db:"brand"`
	BrandTitle string `csv:"brand_title" db:"brand_title"`
	Code       string `csv:"code" db:"code"`
	CodeAlias  string `csv:"code_alias" db:"code_alias"`
	ModelName  string `csv:"model_name" db:"model_name"`
	VerName    string `csv:"ver_name" db:"ver_name"`
}

// Values returns the fields in PhoneModelColumns order.
func (m PhoneModel) Values() []string {
	return []string{m.Model, m.DType, m.Brand, m.BrandTitle, m.Code, m.CodeAlias, m.ModelName, m.VerName}
}

// Row is one parsed CSV record. An invalid NullString marks a missing value.
type Row []sql.NullString

// Table is a parsed CSV document: the header plus every data row, in source order.
type Table struct {
	Columns []string
	Rows    []Row
}

// MissingMarkers are the cell values treated as missing, on top of the empty string.
// These are the NA tokens commonly found in exported tabular data.
var MissingMarkers = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsMissing reports whether a raw cell value is a missing marker.
func IsMissing(s string) bool {
	_, ok := MissingMarkers[s]
	return ok
}

// NullableString maps a raw cell value to a NullString, treating missing markers as NULL.
func NullableString(s string) sql.NullString {
	if IsMissing(s) {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
