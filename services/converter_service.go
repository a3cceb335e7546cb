// services/converter_service.go
package services

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/gewnthar/phonemodels/database"
	"github.com/gewnthar/phonemodels/models"
	"github.com/gewnthar/phonemodels/scraper"
	log "github.com/sirupsen/logrus"
)

// CSVFetcher downloads the raw bytes of a CSV resource.
type CSVFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Converter turns the remote CSV into a SQL script that rebuilds phone_models.
type Converter struct {
	Fetcher    CSVFetcher
	CSVURL     string
	OutputFile string

	// Optional targets. A nil handle skips that step.
	SQLiteDB *sql.DB
	MySQLDB  *sql.DB

	Now func() time.Time
}

// ConversionResult summarizes one converter run.
type ConversionResult struct {
	Rows          int
	OutputFile    string
	Fingerprint   string
	AppliedSQLite bool
	LoadedMySQL   bool
}

// Run fetches, parses and renders the whole script in memory before writing
// it, so a failed fetch or parse leaves the previous output file untouched.
func (c *Converter) Run(ctx context.Context) (ConversionResult, error) {
	var result ConversionResult

	log.Infof("🚀 Fetching data from %s ...", c.CSVURL)
	body, err := c.Fetcher.Fetch(ctx, c.CSVURL)
	if err != nil {
		return result, fmt.Errorf("failed to fetch CSV: %w", err)
	}
	result.Fingerprint = Fingerprint(body)

	table, err := scraper.ParseTable(bytes.NewReader(body))
	if err != nil {
		return result, fmt.Errorf("failed to parse CSV from %s: %w", c.CSVURL, err)
	}
	result.Rows = len(table.Rows)

	script := RenderSQLScript(table)
	if err := os.WriteFile(c.OutputFile, script, 0644); err != nil {
		return result, fmt.Errorf("failed to write %s: %w", c.OutputFile, err)
	}
	result.OutputFile = c.OutputFile
	log.Infof("✅ Generated %s with %d rows.", c.OutputFile, result.Rows)

	if c.SQLiteDB != nil {
		if err := database.ApplyScript(ctx, c.SQLiteDB, script); err != nil {
			return result, fmt.Errorf("failed to apply script to sqlite: %w", err)
		}
		result.AppliedSQLite = true
		log.Infof("✅ Applied %s to SQLite database.", c.OutputFile)
	}

	if c.MySQLDB != nil {
		if err := c.loadMySQL(ctx, body, result); err != nil {
			return result, err
		}
		result.LoadedMySQL = true
	}

	return result, nil
}

func (c *Converter) loadMySQL(ctx context.Context, body []byte, result ConversionResult) error {
	phoneModels, err := scraper.ParsePhoneModels(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to decode phone models: %w", err)
	}
	if err := database.EnsurePhoneModelsTable(ctx, c.MySQLDB); err != nil {
		return err
	}
	if err := database.SavePhoneModels(ctx, c.MySQLDB, phoneModels); err != nil {
		return fmt.Errorf("failed to load phone models into MySQL: %w", err)
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return database.LogDataSourceVersion(ctx, c.MySQLDB, models.DataSourceVersion{
		SourceName:    path.Base(c.CSVURL),
		SourceFileURL: c.CSVURL,
		DataHash:      result.Fingerprint,
		RowCount:      len(phoneModels),
		LoadedAt:      now(),
	})
}
