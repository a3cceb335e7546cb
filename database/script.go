// database/script.go
package database

import (
	"context"
	"database/sql"
	"fmt"
)

// ApplyScript executes a generated multi-statement SQL script against db.
// The script carries its own BEGIN/COMMIT, so it runs as a single Exec on one connection.
func ApplyScript(ctx context.Context, db *sql.DB, script []byte) error {
	if db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection for script: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, string(script)); err != nil {
		// A failed statement leaves the script's transaction open.
		conn.ExecContext(context.Background(), "ROLLBACK")
		return fmt.Errorf("failed to apply SQL script: %w", err)
	}
	return nil
}
