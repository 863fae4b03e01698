package api

import (
	"context"
	"encoding/json"
	"net/http"
	"path"
	"time"

	"github.com/aws/aws-lambda-go/events"
)

type listUserMoviesRequest struct {
	UserID string `json:"userId"`
}

type movieEntry struct {
	MovieID      string `json:"movieId"`
	URL          string `json:"url"`
	LastModified string `json:"lastModified,omitempty"`
}

// handleListUserMovies lists the user's uploaded objects and returns them
// in the order the store listing yields, each with a display id (final
// path segment) and its edge URL.
func (rt *Router) handleListUserMovies(ctx context.Context, payload json.RawMessage) *events.APIGatewayProxyResponse {
	var req listUserMoviesRequest
	_ = json.Unmarshal(payload, &req)

	if req.UserID == "" {
		return errorJSON(http.StatusBadRequest, "userId is required")
	}

	objects, err := rt.Media.ListPrefix(ctx, req.UserID+"/")
	if err != nil {
		return errorJSON(http.StatusInternalServerError, err.Error())
	}

	movies := make([]movieEntry, 0, len(objects))
	for _, obj := range objects {
		entry := movieEntry{
			MovieID: path.Base(obj.Key),
			URL:     rt.Edge.URL(obj.Key),
		}
		if !obj.LastModified.IsZero() {
			entry.LastModified = obj.LastModified.UTC().Format(time.RFC3339)
		}
		movies = append(movies, entry)
	}

	return respondJSON(http.StatusOK, map[string][]movieEntry{
		"movies": movies,
	})
}
