// services/sync_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/gewnthar/phonemodels/models"
	"github.com/gewnthar/phonemodels/scraper"
	"github.com/gewnthar/phonemodels/storage"
	log "github.com/sirupsen/logrus"
)

// ObjectStore uploads a single object.
type ObjectStore interface {
	PutObject(ctx context.Context, obj storage.Object) error
}

// Syncer publishes the dataset as JSON whenever its content changes.
type Syncer struct {
	Fetcher CSVFetcher
	CSVURL  string

	// Store is nil when the storage configuration is incomplete.
	Store        ObjectStore
	ObjectKey    string
	ContentType  string
	CacheControl string

	Now func() time.Time
}

// Sync runs one change-detection-and-publish cycle against the last-known state.
// The returned result's State is the state to persist; it only advances after
// a successful upload, so a failed or skipped upload is retried on the next run.
func (s *Syncer) Sync(ctx context.Context, last models.SyncState) (models.SyncResult, error) {
	result := models.SyncResult{State: last}

	log.Info("🚀 Fetching remote CSV...")
	body, err := s.Fetcher.Fetch(ctx, s.CSVURL)
	if err != nil {
		return result, fmt.Errorf("failed to fetch CSV: %w", err)
	}

	result.Fingerprint = Fingerprint(body)
	if last.Known() && result.Fingerprint == last.Fingerprint {
		result.Status = models.SyncUnchanged
		log.Info("✅ MD5 matches, data unchanged. Skipping upload.")
		return result, nil
	}

	log.Infof("🚀 Data changed (md5 %s), building JSON...", result.Fingerprint)
	table, err := scraper.ParseTable(bytes.NewReader(body))
	if err != nil {
		return result, fmt.Errorf("failed to parse CSV from %s: %w", s.CSVURL, err)
	}
	payload, err := MarshalRowObjects(table)
	if err != nil {
		return result, fmt.Errorf("failed to render JSON: %w", err)
	}
	result.Rows = len(table.Rows)
	result.PayloadBytes = len(payload)

	if s.Store == nil {
		result.Status = models.SyncMissingConfig
		log.Debug("Object storage is not configured, skipping upload.")
		return result, nil
	}

	log.Infof("🚀 Uploading %s (%d rows, %d bytes)...", s.ObjectKey, result.Rows, result.PayloadBytes)
	err = s.Store.PutObject(ctx, storage.Object{
		Key:          s.ObjectKey,
		Body:         payload,
		ContentType:  s.ContentType,
		CacheControl: s.CacheControl,
	})
	if err != nil {
		return result, fmt.Errorf("failed to upload %s: %w", s.ObjectKey, err)
	}
	log.Info("✅ Upload succeeded.")

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	result.Status = models.SyncPublished
	result.PublishedAt = now()
	result.State = models.SyncState{Fingerprint: result.Fingerprint}
	return result, nil
}
