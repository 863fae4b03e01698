package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"
)

// ProgressStore persists watch-progress records in DynamoDB.
// The table's partition key is userId and the sort key is movieId.
type ProgressStore struct {
	client    DynamoAPI
	tableName string
}

// NewProgressStore creates a ProgressStore for the given table.
// The client should be initialized from the shared AWS config.
func NewProgressStore(client DynamoAPI, tableName string) *ProgressStore {
	return &ProgressStore{
		client:    client,
		tableName: tableName,
	}
}

// Table returns the DynamoDB table name this store writes to.
func (s *ProgressStore) Table() string {
	return s.tableName
}

// Put replaces the record for (rec.UserID, rec.MovieID) with rec.
// WatchProgress is written as an exact decimal number attribute so the
// stored value round-trips to float without drift.
func (s *ProgressStore) Put(ctx context.Context, rec *Progress) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	item["watchProgress"] = &types.AttributeValueMemberN{
		Value: strconv.FormatFloat(rec.WatchProgress, 'f', -1, 64),
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("PutItem userId=%s movieId=%s: %w", rec.UserID, rec.MovieID, err)
	}

	log.Debug().
		Str("userId", rec.UserID).
		Str("movieId", rec.MovieID).
		Float64("watchProgress", rec.WatchProgress).
		Msg("Progress persisted to DynamoDB")
	return nil
}

// Get retrieves the record for (userID, movieID). Returns nil, nil if no
// record exists — absence is not an error.
func (s *ProgressStore) Get(ctx context.Context, userID, movieID string) (*Progress, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"userId":  &types.AttributeValueMemberS{Value: userID},
			"movieId": &types.AttributeValueMemberS{Value: movieID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem userId=%s movieId=%s: %w", userID, movieID, err)
	}
	if result.Item == nil {
		return nil, nil
	}

	var rec Progress
	if err := attributevalue.UnmarshalMap(result.Item, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal progress userId=%s movieId=%s: %w", userID, movieID, err)
	}
	return &rec, nil
}

// UploadStore persists upload metadata records in DynamoDB.
// The table's partition key is videoId.
type UploadStore struct {
	client    DynamoAPI
	tableName string
}

// NewUploadStore creates an UploadStore for the given table.
func NewUploadStore(client DynamoAPI, tableName string) *UploadStore {
	return &UploadStore{
		client:    client,
		tableName: tableName,
	}
}

// Table returns the DynamoDB table name this store writes to.
func (s *UploadStore) Table() string {
	return s.tableName
}

// Put writes the metadata record for a freshly generated video identifier.
// Identifiers are never reused, so this is always a create.
func (s *UploadStore) Put(ctx context.Context, rec *Upload) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal upload: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("PutItem videoId=%s: %w", rec.VideoID, err)
	}

	log.Debug().
		Str("videoId", rec.VideoID).
		Str("userId", rec.UserID).
		Msg("Upload metadata persisted to DynamoDB")
	return nil
}
