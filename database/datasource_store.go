// database/datasource_store.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gewnthar/phonemodels/models"
	log "github.com/sirupsen/logrus"
)

// LogDataSourceVersion records which content of a CSV source was last loaded.
// The row for v.SourceName is replaced inside a transaction, which works the same on MySQL and SQLite.
func LogDataSourceVersion(ctx context.Context, db *sql.DB, v models.DataSourceVersion) error {
	if db == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	if _, err := db.ExecContext(ctx, createDataSourceVersionsTableSQL()); err != nil {
		return fmt.Errorf("failed to create %s table: %w", dataSourceVersionsTable, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for data source version: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+dataSourceVersionsTable+" WHERE source_name = ?", v.SourceName); err != nil {
		return fmt.Errorf("failed to clear data source version for %s: %w", v.SourceName, err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO `+dataSourceVersionsTable+` (
			source_name, source_file_url, data_hash, row_count, loaded_at
		) VALUES (?, ?, ?, ?, ?)`,
		v.SourceName, v.SourceFileURL, v.DataHash, v.RowCount, v.LoadedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to log data source version for %s: %w", v.SourceName, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit data source version for %s: %w", v.SourceName, err)
	}

	log.Infof("Database: logged data source version for '%s' (hash %s, %d rows)", v.SourceName, v.DataHash, v.RowCount)
	return nil
}

// GetDataSourceVersion returns the recorded version for sourceName, or nil when none exists.
func GetDataSourceVersion(ctx context.Context, db *sql.DB, sourceName string) (*models.DataSourceVersion, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	var v models.DataSourceVersion
	err := db.QueryRowContext(ctx, `
		SELECT source_name, source_file_url, data_hash, row_count, loaded_at
		FROM `+dataSourceVersionsTable+`
		WHERE source_name = ?`, sourceName,
	).Scan(&v.SourceName, &v.SourceFileURL, &v.DataHash, &v.RowCount, &v.LoadedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query data source version for %s: %w", sourceName, err)
	}
	return &v, nil
}
