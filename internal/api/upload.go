package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/streamvault/content-api/internal/store"
)

// uploadURLExpiry bounds how long a presigned PUT stays valid.
const uploadURLExpiry = 15 * time.Minute

type requestUploadURLRequest struct {
	UserID   string `json:"userId"`
	FileName string `json:"fileName"`
}

// handleRequestUploadURL issues a presigned PUT URL for a freshly generated
// video identifier. The identifier embeds a random token, so repeated
// uploads of identically named files never collide; it doubles as the S3
// key and the metadata record's primary key.
//
// The metadata write and the notification publish are best-effort: their
// failures are logged and discarded, never surfaced to the client.
func (rt *Router) handleRequestUploadURL(ctx context.Context, payload json.RawMessage) *events.APIGatewayProxyResponse {
	var req requestUploadURLRequest
	_ = json.Unmarshal(payload, &req)

	if req.UserID == "" || req.FileName == "" {
		return errorJSON(http.StatusBadRequest, "userId and fileName are required")
	}

	videoID := fmt.Sprintf("%s/%s-%s", req.UserID, uuid.NewString(), req.FileName)

	uploadURL, err := rt.Media.PresignUpload(ctx, videoID, "video/mp4", uploadURLExpiry)
	if err != nil {
		return errorJSON(http.StatusInternalServerError, err.Error())
	}

	rec := &store.Upload{
		VideoID:    videoID,
		UserID:     req.UserID,
		FileName:   req.FileName,
		UploadedAt: time.Now().UTC().Format(time.RFC3339),
		Status:     "uploaded",
	}
	if err := rt.Uploads.Put(ctx, rec); err != nil {
		log.Warn().Err(err).Str("videoId", videoID).Msg("Upload metadata write failed — continuing")
	}

	if rt.Notify != nil {
		msg := fmt.Sprintf("User %s requested an upload URL for %s (videoId: %s)", req.UserID, req.FileName, videoID)
		if err := rt.Notify.Publish(ctx, "New video upload", msg); err != nil {
			log.Warn().Err(err).Str("videoId", videoID).Msg("Upload notification publish failed — continuing")
		}
	}

	return respondJSON(http.StatusOK, map[string]string{
		"uploadUrl": uploadURL,
		"videoId":   videoID,
	})
}
