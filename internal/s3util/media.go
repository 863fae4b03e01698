// Package s3util provides the S3-backed media store shared by the Lambda
// handlers: presigned browser-upload URLs, direct object writes (TTS audio),
// and per-user object listing.
package s3util

import (
	"context"
	"fmt"
	"io"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// S3API is the subset of the S3 client used by MediaStore.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// PresignAPI is the subset of the S3 presign client used by MediaStore.
type PresignAPI interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Compile-time checks that the real SDK clients satisfy the interfaces.
var (
	_ S3API      = (*s3.Client)(nil)
	_ PresignAPI = (*s3.PresignClient)(nil)
)

// Object describes one stored object returned by a prefix listing.
type Object struct {
	Key          string
	LastModified time.Time
}

// MediaStore wraps a single S3 bucket holding movie renditions, user uploads,
// and synthesized TTS audio.
type MediaStore struct {
	client    S3API
	presigner PresignAPI
	bucket    string
}

// NewMediaStore creates a MediaStore for the given bucket.
func NewMediaStore(client S3API, presigner PresignAPI, bucket string) *MediaStore {
	return &MediaStore{
		client:    client,
		presigner: presigner,
		bucket:    bucket,
	}
}

// Bucket returns the backing bucket name.
func (m *MediaStore) Bucket() string {
	return m.bucket
}

// PresignUpload returns a presigned PUT URL for the given key. The
// content type is part of the signature, so the uploading client must
// send it verbatim.
func (m *MediaStore) PresignUpload(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
	result, err := m.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      &m.bucket,
		Key:         &key,
		ContentType: &contentType,
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("presign PutObject %s: %w", key, err)
	}

	log.Debug().Str("key", key).Str("contentType", contentType).Dur("expiry", expiry).Msg("Presigned upload URL generated")
	return result.URL, nil
}

// PutObject writes an object directly to the bucket.
func (m *MediaStore) PutObject(ctx context.Context, key, contentType string, body io.Reader) error {
	_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &m.bucket,
		Key:         &key,
		Body:        body,
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("PutObject %s: %w", key, err)
	}

	log.Debug().Str("key", key).Str("contentType", contentType).Msg("Object written to S3")
	return nil
}

// ListPrefix returns all objects under the given key prefix, in the order
// the listing yields them.
func (m *MediaStore) ListPrefix(ctx context.Context, prefix string) ([]Object, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: &m.bucket,
		Prefix: &prefix,
	}

	var objects []Object

	// Handle pagination — S3 returns up to 1000 keys per call.
	for {
		result, err := m.client.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("ListObjectsV2 prefix=%s: %w", prefix, err)
		}

		for _, obj := range result.Contents {
			o := Object{}
			if obj.Key != nil {
				o.Key = *obj.Key
			}
			if obj.LastModified != nil {
				o.LastModified = *obj.LastModified
			}
			objects = append(objects, o)
		}

		if result.IsTruncated == nil || !*result.IsTruncated {
			break
		}
		input.ContinuationToken = result.NextContinuationToken
	}

	return objects, nil
}
