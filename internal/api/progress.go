package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/streamvault/content-api/internal/store"
)

type saveProgressRequest struct {
	UserID  string `json:"userId"`
	MovieID string `json:"movieId"`
	// Progress is a pointer so an explicit zero counts as present.
	Progress  *float64 `json:"progress"`
	Timestamp string   `json:"timestamp"`
}

type getProgressRequest struct {
	UserID  string `json:"userId"`
	MovieID string `json:"movieId"`
}

// handleSaveProgress overwrites the watch-progress record for the pair.
// No range or monotonicity validation: a lower value silently replaces a
// higher one, matching the table's last-write-wins semantics.
func (rt *Router) handleSaveProgress(ctx context.Context, payload json.RawMessage) *events.APIGatewayProxyResponse {
	var req saveProgressRequest
	_ = json.Unmarshal(payload, &req)

	if req.UserID == "" || req.MovieID == "" || req.Progress == nil {
		return errorJSON(http.StatusBadRequest, "userId, movieId, and progress are required")
	}

	lastWatched := req.Timestamp
	if lastWatched == "" {
		lastWatched = "unknown"
	}

	err := rt.Progress.Put(ctx, &store.Progress{
		UserID:        req.UserID,
		MovieID:       req.MovieID,
		WatchProgress: *req.Progress,
		LastWatched:   lastWatched,
	})
	if err != nil {
		return errorJSON(http.StatusInternalServerError, err.Error())
	}

	return respondJSON(http.StatusOK, map[string]string{
		"message": "Progress saved successfully",
	})
}

// handleGetProgress reads the record for the pair. A missing record is not
// an error: the client gets a zero-progress default with status 200.
func (rt *Router) handleGetProgress(ctx context.Context, payload json.RawMessage) *events.APIGatewayProxyResponse {
	var req getProgressRequest
	_ = json.Unmarshal(payload, &req)

	if req.UserID == "" || req.MovieID == "" {
		return errorJSON(http.StatusBadRequest, "userId and movieId are required")
	}

	rec, err := rt.Progress.Get(ctx, req.UserID, req.MovieID)
	if err != nil {
		return errorJSON(http.StatusInternalServerError, err.Error())
	}
	if rec == nil {
		return respondJSON(http.StatusOK, map[string]float64{"watchProgress": 0})
	}

	return respondJSON(http.StatusOK, rec)
}
