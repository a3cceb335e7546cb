// database/schema.go
package database

import (
	"strings"

	"github.com/gewnthar/phonemodels/models"
)

// PhoneModelsTable is the table both the generated script and the loader write to.
const PhoneModelsTable = "phone_models"

const dataSourceVersionsTable = "data_source_versions"

// CreatePhoneModelsTableSQL returns the CREATE TABLE statement for the fixed eight-column schema.
// The DDL is valid for both SQLite and MySQL.
func CreatePhoneModelsTableSQL(ifNotExists bool) string {
	cols := make([]string, len(models.PhoneModelColumns))
	for i, c := range models.PhoneModelColumns {
		cols[i] = c + " TEXT"
	}
	clause := "CREATE TABLE "
	if ifNotExists {
		clause = "CREATE TABLE IF NOT EXISTS "
	}
	return clause + PhoneModelsTable + " (" + strings.Join(cols, ", ") + ");"
}

func createDataSourceVersionsTableSQL() string {
	return `CREATE TABLE IF NOT EXISTS ` + dataSourceVersionsTable + ` (
    source_name     VARCHAR(64) NOT NULL PRIMARY KEY,
    source_file_url TEXT NOT NULL,
    data_hash       VARCHAR(64) NOT NULL,
    row_count       INTEGER NOT NULL,
    loaded_at       TIMESTAMP NOT NULL
);`
}
