// storage/r2_store.go

// Package storage publishes generated artifacts to an S3-compatible object store
// such as Cloudflare R2.
package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/gewnthar/phonemodels/config"
	log "github.com/sirupsen/logrus"
)

// Object is one artifact to upload.
type Object struct {
	Key          string
	Body         []byte
	ContentType  string
	CacheControl string
}

// R2Store uploads objects to a single bucket.
type R2Store struct {
	client s3iface.S3API
	bucket string
}

// NewR2Store builds a store from a validated storage configuration.
// The client uses static credentials, path-style addressing and no retries.
func NewR2Store(cfg config.StorageConfig) (*R2Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sess, err := session.NewSession(&aws.Config{
		Endpoint:         aws.String(cfg.Endpoint),
		Region:           aws.String(cfg.Region),
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		S3ForcePathStyle: aws.Bool(true),
		MaxRetries:       aws.Int(0),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage session: %w", err)
	}

	return &R2Store{client: s3.New(sess), bucket: cfg.Bucket}, nil
}

// NewR2StoreWithClient creates a store around an existing S3 client.
func NewR2StoreWithClient(client s3iface.S3API, bucket string) *R2Store {
	return &R2Store{client: client, bucket: bucket}
}

// PutObject uploads obj with a single PUT request.
func (s *R2Store) PutObject(ctx context.Context, obj Object) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(obj.Key),
		Body:   bytes.NewReader(obj.Body),
	}
	if obj.ContentType != "" {
		input.ContentType = aws.String(obj.ContentType)
	}
	if obj.CacheControl != "" {
		input.CacheControl = aws.String(obj.CacheControl)
	}

	if _, err := s.client.PutObjectWithContext(ctx, input); err != nil {
		return fmt.Errorf("failed to upload %s to bucket %s: %w", obj.Key, s.bucket, err)
	}

	log.Debugf("Storage: uploaded %d bytes to %s/%s", len(obj.Body), s.bucket, obj.Key)
	return nil
}
