package api

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog/log"
)

// corsHeaders returns the permissive cross-origin headers attached to every
// response, success or error. The web client is served from a different
// origin than the API.
func corsHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type",
		"Access-Control-Allow-Methods": "OPTIONS,POST,GET",
		"Content-Type":                 "application/json",
	}
}

// respondJSON builds a response envelope with the payload JSON-encoded as
// the body string.
func respondJSON(status int, payload interface{}) *events.APIGatewayProxyResponse {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode response body")
		return &events.APIGatewayProxyResponse{
			StatusCode: 500,
			Headers:    corsHeaders(),
			Body:       fmt.Sprintf(`{"error":%q}`, err.Error()),
		}
	}
	return &events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    corsHeaders(),
		Body:       string(body),
	}
}

// errorJSON builds the uniform {error: <message>} envelope.
func errorJSON(status int, msg string) *events.APIGatewayProxyResponse {
	return respondJSON(status, map[string]string{"error": msg})
}
