package scraper

import (
	"strings"
	"testing"
)

const sampleCSV = "model,dtype,brand,brand_title,code,code_alias,model_name,ver_name\n" +
	"SM-G9910,phone,samsung,三星,o1q,,Galaxy S21 5G,中国版\n" +
	"O'Brien-1,phone,acme,ACME,ob1,NA,O'Brien,\n"

func TestParseTable(t *testing.T) {
	table, err := ParseTable(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseTable failed: %v", err)
	}

	if len(table.Columns) != 8 || table.Columns[0] != "model" || table.Columns[7] != "ver_name" {
		t.Fatalf("Unexpected columns: %v", table.Columns)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(table.Rows))
	}

	first := table.Rows[0]
	if first[3].String != "三星" || !first[3].Valid {
		t.Errorf("Expected brand_title '三星', got %+v", first[3])
	}
	if first[5].Valid {
		t.Errorf("Expected empty code_alias to be missing, got %+v", first[5])
	}

	second := table.Rows[1]
	if second[0].String != "O'Brien-1" {
		t.Errorf("Expected quote preserved in model, got %q", second[0].String)
	}
	if second[5].Valid {
		t.Errorf("Expected 'NA' marker to be missing, got %+v", second[5])
	}
	if second[7].Valid {
		t.Errorf("Expected trailing empty field to be missing, got %+v", second[7])
	}
}

func TestParseTable_ExtraColumnsAndPadding(t *testing.T) {
	input := "\xEF\xBB\xBFmodel,brand,released\n" +
		"A1,apple,2020\n" +
		"\n" +
		"B2,banana\n"

	table, err := ParseTable(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTable failed: %v", err)
	}
	if table.Columns[0] != "model" {
		t.Errorf("Expected BOM to be stripped, got %q", table.Columns[0])
	}
	if len(table.Columns) != 3 || table.Columns[2] != "released" {
		t.Errorf("Expected extra column kept, got %v", table.Columns)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("Expected blank line skipped and 2 rows, got %d", len(table.Rows))
	}
	if len(table.Rows[1]) != 3 || table.Rows[1][2].Valid {
		t.Errorf("Expected short row padded with missing value, got %+v", table.Rows[1])
	}
}

func TestParseTable_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"too many fields", "a,b\n1,2,3\n"},
		{"too many fields after bare quote", "a,b\nx\"y,2,3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseTable(strings.NewReader(tt.input)); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestParseTable_BareQuoteInUnquotedField(t *testing.T) {
	input := "model,dtype,brand,brand_title,code,code_alias,model_name,ver_name\n" +
		"X1,tv,acme,ACME,x1,,Smart TV 55\" 4K,v1\n"

	table, err := ParseTable(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTable failed: %v", err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(table.Rows))
	}
	if got := table.Rows[0][6].String; got != `Smart TV 55" 4K` {
		t.Errorf("Expected bare quote kept in model_name, got %q", got)
	}
	if got := table.Rows[0][7].String; got != "v1" {
		t.Errorf("Expected ver_name 'v1', got %q", got)
	}

	phoneModels, err := ParsePhoneModels(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParsePhoneModels failed: %v", err)
	}
	if len(phoneModels) != 1 || phoneModels[0].ModelName != `Smart TV 55" 4K` {
		t.Errorf("Unexpected phone models: %+v", phoneModels)
	}
}

func TestParseTable_DuplicateColumns(t *testing.T) {
	tests := []struct {
		header string
		want   []string
	}{
		{"model,brand,model", []string{"model", "brand", "model.1"}},
		{"a,a,a", []string{"a", "a.1", "a.2"}},
		{"a,a.1,a", []string{"a", "a.1", "a.1.1"}},
		{"a,a,a.1", []string{"a", "a.1", "a.1.1"}},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			table, err := ParseTable(strings.NewReader(tt.header + "\n"))
			if err != nil {
				t.Fatalf("ParseTable failed: %v", err)
			}
			if strings.Join(table.Columns, "|") != strings.Join(tt.want, "|") {
				t.Errorf("Expected columns %v, got %v", tt.want, table.Columns)
			}
		})
	}
}

func TestParsePhoneModels_ShortRowMatchesParseTable(t *testing.T) {
	input := "model,dtype,brand,brand_title,code,code_alias,model_name,ver_name\n" +
		"SM-G9910,phone,samsung,Samsung,o1q,,Galaxy S21 5G\n"

	table, err := ParseTable(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTable failed: %v", err)
	}
	if table.Rows[0][7].Valid {
		t.Errorf("Expected padded ver_name to be missing, got %+v", table.Rows[0][7])
	}

	phoneModels, err := ParsePhoneModels(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParsePhoneModels failed: %v", err)
	}
	if len(phoneModels) != 1 {
		t.Fatalf("Expected 1 phone model, got %d", len(phoneModels))
	}
	if phoneModels[0].ModelName != "Galaxy S21 5G" || phoneModels[0].VerName != "" {
		t.Errorf("Unexpected phone model: %+v", phoneModels[0])
	}
}

func TestParsePhoneModels(t *testing.T) {
	phoneModels, err := ParsePhoneModels(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParsePhoneModels failed: %v", err)
	}
	if len(phoneModels) != 2 {
		t.Fatalf("Expected 2 phone models, got %d", len(phoneModels))
	}

	m := phoneModels[0]
	if m.Model != "SM-G9910" || m.Brand != "samsung" || m.ModelName != "Galaxy S21 5G" || m.VerName != "中国版" {
		t.Errorf("Unexpected first phone model: %+v", m)
	}
	if phoneModels[1].CodeAlias != "NA" {
		t.Errorf("Expected raw 'NA' kept by typed decoding, got %q", phoneModels[1].CodeAlias)
	}
}
