// database/phone_model_store.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gewnthar/phonemodels/models"
	log "github.com/sirupsen/logrus"
)

// EnsurePhoneModelsTable creates phone_models when it does not exist yet.
func EnsurePhoneModelsTable(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	if _, err := db.ExecContext(ctx, CreatePhoneModelsTableSQL(true)); err != nil {
		return fmt.Errorf("failed to create %s table: %w", PhoneModelsTable, err)
	}
	return nil
}

// SavePhoneModels replaces the content of phone_models with phoneModels.
// Uses a "clear and load" strategy inside a single transaction.
func SavePhoneModels(ctx context.Context, db *sql.DB, phoneModels []models.PhoneModel) error {
	if db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for phone models: %w", err)
	}
	defer tx.Rollback()

	// Step 1: Delete existing rows.
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+PhoneModelsTable); err != nil {
		return fmt.Errorf("failed to clear %s: %w", PhoneModelsTable, err)
	}

	// Step 2: Insert new rows
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(models.PhoneModelColumns)), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		PhoneModelsTable, strings.Join(models.PhoneModelColumns, ", "), placeholders,
	))
	if err != nil {
		return fmt.Errorf("failed to prepare phone model insert statement: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(models.PhoneModelColumns))
	for _, m := range phoneModels {
		for i, v := range m.Values() {
			args[i] = models.NullableString(v)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			log.Errorf("Database: failed to save phone model %+v: %v", m, err)
			return fmt.Errorf("failed to execute insert for model '%s': %w", m.Model, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction for phone models: %w", err)
	}

	log.Infof("Database: saved %d phone models", len(phoneModels))
	return nil
}

// CountPhoneModels returns the number of rows in phone_models.
func CountPhoneModels(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+PhoneModelsTable).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", PhoneModelsTable, err)
	}
	return n, nil
}
