// Package speech wraps Amazon Polly speech synthesis for the textToSpeech
// action. Each call produces a fresh MP3 stream; callers own persistence of
// the resulting bytes.
package speech

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/service/polly"
	pollytypes "github.com/aws/aws-sdk-go-v2/service/polly/types"
	"github.com/rs/zerolog/log"
)

// DefaultVoice is the fixed voice used for all synthesis requests.
const DefaultVoice = pollytypes.VoiceIdJoanna

// PollyAPI is the subset of the Polly client used by the Synthesizer.
type PollyAPI interface {
	SynthesizeSpeech(ctx context.Context, params *polly.SynthesizeSpeechInput, optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error)
}

// Compile-time check that the real SDK client satisfies the interface.
var _ PollyAPI = (*polly.Client)(nil)

// Synthesizer produces MP3 audio for arbitrary text with a fixed voice.
type Synthesizer struct {
	client PollyAPI
	voice  pollytypes.VoiceId
}

// NewSynthesizer creates a Synthesizer using DefaultVoice.
func NewSynthesizer(client PollyAPI) *Synthesizer {
	return &Synthesizer{
		client: client,
		voice:  DefaultVoice,
	}
}

// Synthesize renders the given text to MP3 bytes.
func (s *Synthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	out, err := s.client.SynthesizeSpeech(ctx, &polly.SynthesizeSpeechInput{
		Text:         &text,
		VoiceId:      s.voice,
		OutputFormat: pollytypes.OutputFormatMp3,
	})
	if err != nil {
		return nil, fmt.Errorf("SynthesizeSpeech: %w", err)
	}
	defer out.AudioStream.Close()

	audio, err := io.ReadAll(out.AudioStream)
	if err != nil {
		return nil, fmt.Errorf("read audio stream: %w", err)
	}

	log.Debug().Int("textLen", len(text)).Int("audioBytes", len(audio)).Str("voice", string(s.voice)).Msg("Speech synthesized")
	return audio, nil
}
