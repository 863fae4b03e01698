// Package api implements the request router and action handlers for the
// streaming content Lambda.
//
// One inbound event — either a raw action payload or an API Gateway HTTP
// wrapper — is normalized, dispatched on its "action" field to exactly one
// handler, and answered with a uniform {statusCode, headers, body} envelope.
// Collaborators are injected as narrow interfaces so each handler is
// testable with substitutable fakes.
//
// Actions:
//
//	authenticate      — IAM user lookup + access-marker policy scan
//	getVideo          — CloudFront playback URL for a movie id
//	saveProgress      — overwrite a (userId, movieId) watch-progress record
//	getProgress       — read a watch-progress record (absence → watchProgress 0)
//	textToSpeech, tts — Polly synthesis, stored to S3, CloudFront URL back
//	requestUploadUrl  — presigned S3 PUT + best-effort metadata and notification
//	listUserMovies    — list a user's uploads with CloudFront URLs
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog/log"

	"github.com/streamvault/content-api/internal/cdn"
	"github.com/streamvault/content-api/internal/identity"
	"github.com/streamvault/content-api/internal/metrics"
	"github.com/streamvault/content-api/internal/s3util"
	"github.com/streamvault/content-api/internal/store"
)

// ProgressStore persists and reads watch-progress records.
type ProgressStore interface {
	Put(ctx context.Context, rec *store.Progress) error
	Get(ctx context.Context, userID, movieID string) (*store.Progress, error)
}

// UploadStore records upload metadata. Writes are best-effort at the call site.
type UploadStore interface {
	Put(ctx context.Context, rec *store.Upload) error
}

// Authenticator resolves a username to an authenticated user or a typed
// failure (identity.ErrUserNotFound, identity.ErrAccessDenied).
type Authenticator interface {
	Authenticate(ctx context.Context, username string) (*identity.User, error)
}

// Synthesizer renders text to audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// MediaStore is the S3 surface used by the handlers.
type MediaStore interface {
	PresignUpload(ctx context.Context, key, contentType string, expiry time.Duration) (string, error)
	PutObject(ctx context.Context, key, contentType string, body io.Reader) error
	ListPrefix(ctx context.Context, prefix string) ([]s3util.Object, error)
}

// Notifier publishes upload announcements. May be nil when notifications
// are not configured; publish failures never fail the request.
type Notifier interface {
	Publish(ctx context.Context, subject, message string) error
}

// Router dispatches normalized requests to the action handlers.
type Router struct {
	Auth     Authenticator
	Media    MediaStore
	Progress ProgressStore
	Uploads  UploadStore
	Speech   Synthesizer
	Notify   Notifier
	Edge     cdn.Edge
}

// metricsNamespace is the CloudWatch EMF namespace for request metrics.
const metricsNamespace = "StreamVault"

// Handle is the Lambda entry point. It never returns a non-nil error:
// every failure, including handler panics, is converted into an error
// envelope so the caller always receives a well-formed response.
func (rt *Router) Handle(ctx context.Context, raw json.RawMessage) (*events.APIGatewayProxyResponse, error) {
	start := time.Now()

	method, payload := normalize(raw)
	if strings.EqualFold(method, http.MethodOptions) {
		// CORS preflight: empty body, no handler work, no collaborator calls.
		return &events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Headers:    corsHeaders(),
			Body:       "",
		}, nil
	}

	action := peekAction(payload)
	resp := rt.dispatch(ctx, action, payload)

	elapsed := time.Since(start)
	log.Info().
		Str("action", action).
		Int("status", resp.StatusCode).
		Dur("duration", elapsed).
		Msg("Request handled")

	metrics.New(metricsNamespace).
		Dimension("Action", actionLabel(action)).
		Metric("RequestLatencyMs", float64(elapsed.Milliseconds()), metrics.UnitMilliseconds).
		Count("RequestCount").
		Property("statusCode", resp.StatusCode).
		Flush()

	return resp, nil
}

// dispatch routes to the handler for the action and is the last-resort
// failure boundary: a panic becomes a 500 envelope carrying the failure's
// description.
func (rt *Router) dispatch(ctx context.Context, action string, payload json.RawMessage) (resp *events.APIGatewayProxyResponse) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("action", action).Interface("panic", r).Msg("Handler panicked")
			resp = errorJSON(http.StatusInternalServerError, fmt.Sprintf("%v", r))
		}
	}()

	switch action {
	case "authenticate":
		return rt.handleAuthenticate(ctx, payload)
	case "getVideo":
		return rt.handleGetVideo(ctx, payload)
	case "saveProgress":
		return rt.handleSaveProgress(ctx, payload)
	case "getProgress":
		return rt.handleGetProgress(ctx, payload)
	case "textToSpeech", "tts":
		return rt.handleTextToSpeech(ctx, payload)
	case "requestUploadUrl":
		return rt.handleRequestUploadURL(ctx, payload)
	case "listUserMovies":
		return rt.handleListUserMovies(ctx, payload)
	case "":
		return errorJSON(http.StatusBadRequest, "Invalid action")
	default:
		return errorJSON(http.StatusBadRequest, fmt.Sprintf("Invalid action: %s", action))
	}
}

// normalize unwraps an API Gateway HTTP envelope if present and returns the
// HTTP method (empty for raw events) plus the flat action payload. A string
// body that fails to parse yields an empty payload — the request then falls
// through dispatch as an unrecognized action.
func normalize(raw json.RawMessage) (method string, payload json.RawMessage) {
	empty := json.RawMessage("{}")

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return "", empty
	}

	m, wrapped := probe["httpMethod"]
	if !wrapped {
		return "", raw
	}
	_ = json.Unmarshal(m, &method)

	body, ok := probe["body"]
	if !ok {
		return method, empty
	}

	// API Gateway delivers the body as a JSON-encoded string; tolerate a
	// pre-parsed object as well.
	var bodyStr string
	if err := json.Unmarshal(body, &bodyStr); err == nil {
		inner := json.RawMessage(bodyStr)
		var check map[string]json.RawMessage
		if json.Unmarshal(inner, &check) != nil {
			log.Warn().Msg("Request body is not valid JSON — treating as empty payload")
			return method, empty
		}
		return method, inner
	}
	var check map[string]json.RawMessage
	if json.Unmarshal(body, &check) != nil {
		return method, empty
	}
	return method, body
}

// peekAction extracts the action discriminator without committing to a
// per-action request shape.
func peekAction(payload json.RawMessage) string {
	var probe struct {
		Action string `json:"action"`
	}
	_ = json.Unmarshal(payload, &probe)
	return probe.Action
}

// actionLabel keeps the metric dimension low-cardinality: arbitrary client
// strings collapse to "unknown".
func actionLabel(action string) string {
	switch action {
	case "authenticate", "getVideo", "saveProgress", "getProgress",
		"textToSpeech", "tts", "requestUploadUrl", "listUserMovies":
		return action
	default:
		return "unknown"
	}
}
