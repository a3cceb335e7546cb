// services/sql_script.go
package services

import (
	"bytes"
	"database/sql"
	"strings"

	"github.com/gewnthar/phonemodels/database"
	"github.com/gewnthar/phonemodels/models"
)

const sqlScriptHeader = "-- Auto-generated SQL, do not edit by hand\n"

// RenderSQLScript renders a script that drops and recreates phone_models and
// inserts every row of table inside one transaction.
func RenderSQLScript(table *models.Table) []byte {
	var buf bytes.Buffer
	buf.WriteString(sqlScriptHeader)
	buf.WriteString("DROP TABLE IF EXISTS " + database.PhoneModelsTable + ";\n")
	buf.WriteString(database.CreatePhoneModelsTableSQL(false) + "\n")
	buf.WriteString("BEGIN TRANSACTION;\n")

	items := make([]string, 0, len(table.Columns))
	for _, row := range table.Rows {
		items = items[:0]
		for _, v := range row {
			items = append(items, SQLLiteral(v))
		}
		buf.WriteString("INSERT INTO " + database.PhoneModelsTable + " VALUES (")
		buf.WriteString(strings.Join(items, ", "))
		buf.WriteString(");\n")
	}

	buf.WriteString("COMMIT;\n")
	return buf.Bytes()
}

// SQLLiteral renders v as a SQL text literal with single quotes doubled, or NULL when missing.
func SQLLiteral(v sql.NullString) string {
	if !v.Valid {
		return "NULL"
	}
	return "'" + strings.ReplaceAll(v.String, "'", "''") + "'"
}
