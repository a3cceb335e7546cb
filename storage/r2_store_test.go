package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gewnthar/phonemodels/config"
)

type recordedRequest struct {
	method       string
	path         string
	contentType  string
	cacheControl string
	body         string
}

func newFakeS3(t *testing.T, status int) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var (
		mu       sync.Mutex
		requests []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		requests = append(requests, recordedRequest{
			method:       r.Method,
			path:         r.URL.Path,
			contentType:  r.Header.Get("Content-Type"),
			cacheControl: r.Header.Get("Cache-Control"),
			body:         string(body),
		})
		mu.Unlock()

		if status != http.StatusOK {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(status)
			io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code><Message>Access Denied</Message></Error>`)
			return
		}
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func testStorageConfig(endpoint string) config.StorageConfig {
	return config.StorageConfig{
		Endpoint:  endpoint,
		AccessKey: "AKID",
		SecretKey: "SECRET",
		Bucket:    "phones",
		Region:    "auto",
	}
}

func TestR2Store_PutObject(t *testing.T) {
	srv, requests := newFakeS3(t, http.StatusOK)

	store, err := NewR2Store(testStorageConfig(srv.URL))
	if err != nil {
		t.Fatalf("NewR2Store failed: %v", err)
	}

	err = store.PutObject(context.Background(), Object{
		Key:          "models.json",
		Body:         []byte(`[{"model":"A1"}]`),
		ContentType:  "application/json",
		CacheControl: "public, max-age=3600",
	})
	if err != nil {
		t.Fatalf("PutObject failed: %v", err)
	}

	if len(*requests) != 1 {
		t.Fatalf("Expected exactly 1 request, got %d", len(*requests))
	}
	got := (*requests)[0]
	if got.method != http.MethodPut {
		t.Errorf("Expected PUT, got %s", got.method)
	}
	if got.path != "/phones/models.json" {
		t.Errorf("Expected path-style key /phones/models.json, got %s", got.path)
	}
	if got.contentType != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %q", got.contentType)
	}
	if got.cacheControl != "public, max-age=3600" {
		t.Errorf("Expected Cache-Control header, got %q", got.cacheControl)
	}
	if got.body != `[{"model":"A1"}]` {
		t.Errorf("Unexpected body %q", got.body)
	}
}

func TestR2Store_PutObjectFailureIsNotRetried(t *testing.T) {
	srv, requests := newFakeS3(t, http.StatusInternalServerError)

	store, err := NewR2Store(testStorageConfig(srv.URL))
	if err != nil {
		t.Fatalf("NewR2Store failed: %v", err)
	}

	err = store.PutObject(context.Background(), Object{Key: "models.json", Body: []byte("[]")})
	if err == nil {
		t.Fatal("Expected upload error, got nil")
	}
	if len(*requests) != 1 {
		t.Errorf("Expected a single attempt, got %d", len(*requests))
	}
}

func TestNewR2Store_IncompleteConfig(t *testing.T) {
	_, err := NewR2Store(config.StorageConfig{Bucket: "phones"})
	if !errors.Is(err, config.ErrIncompleteStorageConfig) {
		t.Errorf("Expected ErrIncompleteStorageConfig, got %v", err)
	}
}
