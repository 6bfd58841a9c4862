package outbound

import "context"

type SynthesizeSpeechRequest struct {
	Text  string
	Voice string
}

type SpeechClip struct {
	FileName string
	Duration float64
}

type SpeechSynthesizerPort interface {
	Synthesize(ctx context.Context, req SynthesizeSpeechRequest) (*SpeechClip, error)
}
