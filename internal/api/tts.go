package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type textToSpeechRequest struct {
	Text string `json:"text"`
	// MovieID is accepted for compatibility with older clients but no
	// longer keys the stored audio.
	MovieID string `json:"movieId"`
}

// handleTextToSpeech synthesizes the text, stores the audio under a fresh
// random key, and returns its edge URL. Keys are never reused, so repeated
// identical requests each produce a new synthesis and a new object.
func (rt *Router) handleTextToSpeech(ctx context.Context, payload json.RawMessage) *events.APIGatewayProxyResponse {
	var req textToSpeechRequest
	_ = json.Unmarshal(payload, &req)

	if req.Text == "" {
		return errorJSON(http.StatusBadRequest, "text is required")
	}

	audio, err := rt.Speech.Synthesize(ctx, req.Text)
	if err != nil {
		log.Error().Err(err).Int("textLen", len(req.Text)).Msg("Speech synthesis failed")
		return errorJSON(http.StatusInternalServerError, err.Error())
	}

	key := "tts/" + uuid.NewString() + ".mp3"
	if err := rt.Media.PutObject(ctx, key, "audio/mpeg", bytes.NewReader(audio)); err != nil {
		log.Error().Err(err).Str("key", key).Msg("TTS audio upload failed")
		return errorJSON(http.StatusInternalServerError, err.Error())
	}

	return respondJSON(http.StatusOK, map[string]string{
		"audioUrl": rt.Edge.URL(key),
	})
}
