// Package speech turns a dialogue script into a single WAV episode.
// Each turn is synthesized separately with its persona's voice, and the
// raw PCM segments are concatenated in turn order before the WAV
// container is written.
package speech

import (
	"context"
	"fmt"

	"github.com/pdiddy/podcast-engine/pkg/types"
)

// Backend abstracts the text-to-speech API so tests can supply a mock.
// SpeakTurn returns raw 16-bit little-endian mono PCM for one utterance.
type Backend interface {
	SpeakTurn(ctx context.Context, voice, text string) ([]byte, error)
}

// UnknownPersonaError reports a script turn whose persona has no
// configured voice. The script validator should have caught this; a
// late appearance means the configuration changed between stages.
type UnknownPersonaError struct {
	Persona string
}

func (e *UnknownPersonaError) Error() string {
	return fmt.Sprintf("no voice configured for persona %q", e.Persona)
}

// SynthesisError reports a provider failure on a specific turn. The
// whole episode is abandoned; a script with a silent gap is worse than
// no episode.
type SynthesisError struct {
	Turn int
	Err  error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synthesizing turn %d: %v", e.Turn, e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// Audio is the finished episode audio.
type Audio struct {
	// WAV is the complete file content, container header included.
	WAV []byte

	// DurationSeconds is the play length derived from the PCM size,
	// rounded down.
	DurationSeconds int
}

// Synthesizer converts scripts to audio using a fixed persona-to-voice
// mapping.
type Synthesizer struct {
	backend    Backend
	voices     map[string]string
	sampleRate int
}

// DefaultSampleRate is the PCM sample rate the Gemini TTS API emits.
const DefaultSampleRate = 24000

// NewSynthesizer builds a synthesizer from the speech configuration.
func NewSynthesizer(backend Backend, cfg types.SpeechConfig) *Synthesizer {
	voices := make(map[string]string, len(cfg.Personas))
	for _, p := range cfg.Personas {
		voices[p.Name] = p.Voice
	}
	rate := cfg.SampleRate
	if rate == 0 {
		rate = DefaultSampleRate
	}
	return &Synthesizer{backend: backend, voices: voices, sampleRate: rate}
}

// Synthesize produces the episode WAV for a script. Turns are
// synthesized and concatenated strictly in script order.
func (s *Synthesizer) Synthesize(ctx context.Context, script types.DialogueScript) (*Audio, error) {
	var pcm []byte
	for i, turn := range script.Turns {
		voice, ok := s.voices[turn.Persona]
		if !ok {
			return nil, &UnknownPersonaError{Persona: turn.Persona}
		}
		segment, err := s.backend.SpeakTurn(ctx, voice, turn.Text)
		if err != nil {
			return nil, &SynthesisError{Turn: i, Err: err}
		}
		pcm = append(pcm, segment...)
	}

	return &Audio{
		WAV:             encodeWAV(pcm, s.sampleRate),
		DurationSeconds: pcmDurationSeconds(len(pcm), s.sampleRate),
	}, nil
}
