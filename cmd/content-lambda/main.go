// Package main provides the Lambda entry point for the streaming content API.
//
// A single function serves every client action — authenticate, getVideo,
// saveProgress, getProgress, textToSpeech (alias tts), requestUploadUrl,
// and listUserMovies — dispatched on the "action" field of the request
// payload. Requests arrive either as raw action payloads (direct invoke)
// or wrapped in an API Gateway proxy event; both shapes receive the same
// {statusCode, headers, body} envelope with CORS headers on every response.
//
// Memory: 256 MB
// Timeout: 30 seconds
package main

import (
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/streamvault/content-api/internal/api"
	"github.com/streamvault/content-api/internal/boot"
	"github.com/streamvault/content-api/internal/logging"
)

// router holds all collaborator clients, initialized at cold start.
var router *api.Router

func init() {
	initStart := time.Now()
	logging.Init()

	cfg := boot.InitAWS()

	media := boot.InitMedia(cfg)
	progress, uploads := boot.InitStores(cfg)
	auth := boot.InitIdentity(cfg)
	speech := boot.InitSpeech(cfg)
	notifier := boot.InitNotifier(cfg)
	edge := boot.InitEdge()

	router = &api.Router{
		Auth:     auth,
		Media:    media,
		Progress: progress,
		Uploads:  uploads,
		Speech:   speech,
		Edge:     edge,
	}
	// A typed nil must not reach the Notifier interface — handlers treat a
	// nil interface as "notifications disabled".
	if notifier != nil {
		router.Notify = notifier
	}

	boot.StartupLog("content-lambda", initStart).
		S3Bucket("media", media.Bucket()).
		DynamoTable("progress", progress.Table()).
		DynamoTable("uploads", uploads.Table()).
		Config("edgeDomain", edge.Domain()).
		Feature("uploadNotifications", notifier != nil).
		Log()
}

func main() {
	lambda.Start(router.Handle)
}
