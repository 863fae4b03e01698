// Package store provides DynamoDB-backed persistence for per-user watch
// progress and user-upload metadata.
//
// Progress records live in a table keyed by (userId, movieId); writes are
// full-item replacements, so concurrent saves for the same pair resolve to
// last-write-wins under DynamoDB's own write semantics. Upload metadata
// records live in a separate table keyed by the generated video identifier,
// which doubles as the S3 object key. Neither table is ever read-modified
// or deleted by this service.
package store

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DynamoAPI is the subset of the DynamoDB client used by the stores.
// Narrowing to the two calls in use keeps the stores testable with fakes.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// Compile-time check that the real SDK client satisfies the interface.
var _ DynamoAPI = (*dynamodb.Client)(nil)

// Progress is one user's watch position on one movie.
// WatchProgress is a fraction with no enforced range; LastWatched is an
// opaque client-supplied timestamp string.
type Progress struct {
	UserID        string  `json:"userId" dynamodbav:"userId"`
	MovieID       string  `json:"movieId" dynamodbav:"movieId"`
	WatchProgress float64 `json:"watchProgress" dynamodbav:"watchProgress"`
	LastWatched   string  `json:"lastWatched" dynamodbav:"lastWatched"`
}

// Upload is the metadata record written when a browser upload URL is issued.
// VideoID is the table's primary key and the S3 key the client uploads to.
type Upload struct {
	VideoID    string `json:"videoId" dynamodbav:"videoId"`
	UserID     string `json:"userId" dynamodbav:"userId"`
	FileName   string `json:"fileName" dynamodbav:"fileName"`
	UploadedAt string `json:"uploadedAt" dynamodbav:"uploadedAt"`
	Status     string `json:"status" dynamodbav:"status"`
}
