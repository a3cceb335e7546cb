// models/meta.go
package models

import "time"

// DataSourceVersion tracks which content of a CSV source was last loaded.
type DataSourceVersion struct {
	SourceName    string    `db:"source_name" json:"source_name"`
	SourceFileURL string    `db:"source_file_url" json:"source_file_url"`
	DataHash      string    `db:"data_hash" json:"data_hash"` // MD5 of the raw file
	RowCount      int       `db:"row_count" json:"row_count"`
	LoadedAt      time.Time `db:"loaded_at" json:"loaded_at"`
}

// SyncState is the last-known state carried between syncer runs.
type SyncState struct {
	Fingerprint string // empty when nothing was published yet
}

// Known reports whether a previous publish was recorded.
func (s SyncState) Known() bool {
	return s.Fingerprint != ""
}

type SyncStatus string

const (
	SyncUnchanged     SyncStatus = "unchanged"
	SyncPublished     SyncStatus = "published"
	SyncMissingConfig SyncStatus = "missing_config"
)

// SyncResult describes one syncer run. State is what the caller should persist;
// it only differs from the input state when Status is SyncPublished.
type SyncResult struct {
	Status       SyncStatus
	Fingerprint  string
	Rows         int
	PayloadBytes int
	PublishedAt  time.Time
	State        SyncState
}
