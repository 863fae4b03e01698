// Package boot provides the Lambda cold-start bootstrap: AWS config loading
// and construction of the collaborator clients the router depends on. Each
// helper resolves its resource name from a fixed default with an
// environment-variable override.
package boot

import (
	"context"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog/log"

	"github.com/streamvault/content-api/internal/cdn"
	"github.com/streamvault/content-api/internal/identity"
	"github.com/streamvault/content-api/internal/logging"
	"github.com/streamvault/content-api/internal/notify"
	"github.com/streamvault/content-api/internal/s3util"
	"github.com/streamvault/content-api/internal/speech"
	"github.com/streamvault/content-api/internal/store"
)

// Default resource names. Overridable via the env vars named in each Init
// helper; the defaults match the production deployment.
const (
	DefaultMediaBucket   = "streamvault-media"
	DefaultProgressTable = "StreamVaultUserData"
	DefaultUploadsTable  = "StreamVaultUploads"
	DefaultEdgeDomain    = "d3vid9stream.cloudfront.net"
)

// InitAWS loads the default AWS config. Fatals on failure — the Lambda
// cannot serve anything without it.
func InitAWS() aws.Config {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load AWS config")
	}
	log.Debug().Str("region", cfg.Region).Msg("AWS config loaded")
	return cfg
}

// InitMedia creates the S3-backed media store (MEDIA_BUCKET_NAME).
func InitMedia(cfg aws.Config) *s3util.MediaStore {
	client := s3.NewFromConfig(cfg)
	bucket := logging.EnvOrDefault("MEDIA_BUCKET_NAME", DefaultMediaBucket)
	return s3util.NewMediaStore(client, s3.NewPresignClient(client), bucket)
}

// InitStores creates the progress and upload-metadata stores over a shared
// DynamoDB client (PROGRESS_TABLE_NAME, UPLOADS_TABLE_NAME).
func InitStores(cfg aws.Config) (*store.ProgressStore, *store.UploadStore) {
	client := dynamodb.NewFromConfig(cfg)
	progress := store.NewProgressStore(client, logging.EnvOrDefault("PROGRESS_TABLE_NAME", DefaultProgressTable))
	uploads := store.NewUploadStore(client, logging.EnvOrDefault("UPLOADS_TABLE_NAME", DefaultUploadsTable))
	return progress, uploads
}

// InitIdentity creates the IAM-backed authenticator (ACCESS_MARKER, empty
// falls back to the package default).
func InitIdentity(cfg aws.Config) *identity.Authenticator {
	return identity.NewAuthenticator(iam.NewFromConfig(cfg), os.Getenv("ACCESS_MARKER"))
}

// InitSpeech creates the Polly synthesizer.
func InitSpeech(cfg aws.Config) *speech.Synthesizer {
	return speech.NewSynthesizer(polly.NewFromConfig(cfg))
}

// InitNotifier creates the SNS upload-event publisher if UPLOAD_TOPIC_ARN
// is set. Returns nil (with a warning) if not configured — notifications
// are best-effort and their absence never blocks uploads.
func InitNotifier(cfg aws.Config) *notify.Publisher {
	topicARN := os.Getenv("UPLOAD_TOPIC_ARN")
	if topicARN == "" {
		log.Warn().Msg("UPLOAD_TOPIC_ARN not set — upload notifications disabled")
		return nil
	}
	return notify.NewPublisher(sns.NewFromConfig(cfg), topicARN)
}

// InitEdge resolves the CloudFront distribution domain (EDGE_DOMAIN).
func InitEdge() cdn.Edge {
	return cdn.NewEdge(logging.EnvOrDefault("EDGE_DOMAIN", DefaultEdgeDomain))
}

// StartupLog is a convenience wrapper for the startup logger.
func StartupLog(name string, initStart time.Time) *logging.StartupLogger {
	return logging.NewStartupLogger(name).InitDuration(time.Since(initStart))
}
