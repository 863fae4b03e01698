package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

type getVideoRequest struct {
	MovieID string `json:"movieId"`
}

// handleGetVideo returns the CloudFront playback URL for a movie. The URL is
// plain string composition — no existence check, no signing, no expiry; the
// edge network fronts the media bucket directly.
func (rt *Router) handleGetVideo(_ context.Context, payload json.RawMessage) *events.APIGatewayProxyResponse {
	var req getVideoRequest
	_ = json.Unmarshal(payload, &req)

	if req.MovieID == "" {
		return errorJSON(http.StatusBadRequest, "movieId is required")
	}

	return respondJSON(http.StatusOK, map[string]string{
		"videoUrl": rt.Edge.MovieURL(req.MovieID),
		"movieId":  req.MovieID,
	})
}
