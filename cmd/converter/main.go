// cmd/converter/main.go
package main

import (
	"context"
	"database/sql"
	"flag"
	"os"

	"github.com/gewnthar/phonemodels/config"
	"github.com/gewnthar/phonemodels/database"
	"github.com/gewnthar/phonemodels/logging"
	"github.com/gewnthar/phonemodels/scraper"
	"github.com/gewnthar/phonemodels/services"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (defaults to ./config.yaml or ./config/config.yaml when present)")
	envFile := flag.String("env", ".env", "Optional dotenv file with credentials")
	csvURL := flag.String("url", "", "CSV URL (overrides config)")
	outFile := flag.String("out", "", "Output SQL file (overrides config)")
	sqlitePath := flag.String("sqlite", "", "Apply the generated script to this SQLite database (overrides config)")
	flag.Parse()

	if *configPath == "" {
		*configPath = config.FindConfigFile("config.yaml", "config/config.yaml")
	}
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logging.Setup("info").Fatalf("❌ Error loading configuration: %v", err)
	}
	log := logging.Setup(cfg.Logging.Level)
	if err := cfg.ApplyEnv(*envFile); err != nil {
		log.Fatalf("❌ %v", err)
	}

	if *csvURL != "" {
		cfg.Converter.CSVURL = *csvURL
	}
	if *outFile != "" {
		cfg.Converter.OutputFile = *outFile
	}
	if *sqlitePath != "" {
		cfg.Converter.SQLitePath = *sqlitePath
	}

	conv := &services.Converter{
		Fetcher:    scraper.NewFetcher(cfg.Converter.FetchTimeout),
		CSVURL:     cfg.Converter.CSVURL,
		OutputFile: cfg.Converter.OutputFile,
	}

	var sqliteDB, mysqlDB *sql.DB
	if cfg.Converter.SQLitePath != "" {
		sqliteDB, err = database.OpenSQLite(cfg.Converter.SQLitePath)
		if err != nil {
			log.Errorf("❌ %v", err)
			os.Exit(1)
		}
		conv.SQLiteDB = sqliteDB
	}
	if cfg.Database.Enabled {
		mysqlDB, err = database.OpenMySQL(cfg.Database)
		if err != nil {
			database.Close(sqliteDB)
			log.Errorf("❌ %v", err)
			os.Exit(1)
		}
		conv.MySQLDB = mysqlDB
	}

	result, err := conv.Run(context.Background())
	database.Close(sqliteDB)
	database.Close(mysqlDB)
	if err != nil {
		log.Errorf("❌ Conversion failed: %v", err)
		os.Exit(1)
	}

	log.Infof("✨ Generated %s with %d rows.", result.OutputFile, result.Rows)
}
