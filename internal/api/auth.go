package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog/log"

	"github.com/streamvault/content-api/internal/identity"
)

type authenticateRequest struct {
	Username  string `json:"username"`
	AccessKey string `json:"accessKey"`
}

type authenticateResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
	UserID        string `json:"userId,omitempty"`
	Error         string `json:"error,omitempty"`
}

// handleAuthenticate resolves the username against the identity service and
// checks for the streaming access marker on its policies. The access key is
// required but only checked for presence; sessions are not issued and no
// other action is gated on this one.
func (rt *Router) handleAuthenticate(ctx context.Context, payload json.RawMessage) *events.APIGatewayProxyResponse {
	var req authenticateRequest
	_ = json.Unmarshal(payload, &req)

	if req.Username == "" || req.AccessKey == "" {
		return errorJSON(http.StatusBadRequest, "username and accessKey are required")
	}

	user, err := rt.Auth.Authenticate(ctx, req.Username)
	switch {
	case errors.Is(err, identity.ErrUserNotFound):
		return respondJSON(http.StatusUnauthorized, authenticateResponse{
			Authenticated: false,
			Error:         "user not found",
		})
	case errors.Is(err, identity.ErrAccessDenied):
		return respondJSON(http.StatusForbidden, authenticateResponse{
			Authenticated: false,
			Error:         "user does not have streaming access",
		})
	case err != nil:
		log.Error().Err(err).Str("username", req.Username).Msg("Identity service failure")
		return respondJSON(http.StatusInternalServerError, authenticateResponse{
			Authenticated: false,
			Error:         err.Error(),
		})
	}

	return respondJSON(http.StatusOK, authenticateResponse{
		Authenticated: true,
		Username:      user.Name,
		UserID:        user.ID,
	})
}
