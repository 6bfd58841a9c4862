package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/annastatham03-png/shorts-renderer/application/ports/inbound"
	"github.com/annastatham03-png/shorts-renderer/application/ports/outbound"
	"github.com/annastatham03-png/shorts-renderer/domain"
	"github.com/google/uuid"
)

var ErrEmptyScript = errors.New("script is empty")

type scriptSegmenter struct {
	logger         outbound.LoggerPort
	workerPool     outbound.TaskDispatcher
	boundaryRegexp *regexp.Regexp
}

func NewScriptSegmenter(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher) inbound.ScriptSegmenterPort {
	return &scriptSegmenter{
		logger:         logger,
		workerPool:     workerPool,
		boundaryRegexp: regexp.MustCompile(`[.!?:;]+`),
	}
}

func (s *scriptSegmenter) Generate(ctx context.Context, params inbound.GenerateSegmentsParams) (<-chan domain.Segment, <-chan error) {
	out := make(chan domain.Segment)
	errCh := make(chan error, 5)

	texts := s.splitSentences(params.Script)
	if len(texts) == 0 {
		errCh <- ErrEmptyScript
		close(out)
		close(errCh)
		return out, errCh
	}

	err := s.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)

		for i, text := range texts {
			segment := domain.Segment{
				ID:      uuid.NewString(),
				JobID:   params.JobID,
				Text:    text,
				Ordinal: i,
			}
			s.logger.DebugWithFields("Generated segment", map[string]interface{}{
				"id":  segment.ID,
				"ord": segment.Ordinal,
				"txt": segment.Text,
			})
			select {
			case out <- segment:
			case <-ctx.Done():
				return
			}
		}
	})
	if err != nil {
		errCh <- err
		close(out)
		close(errCh)
	}

	return out, errCh
}

// splitSentences keeps the terminating punctuation with each sentence, so
// joining the segment texts back together reproduces the script modulo
// collapsed whitespace.
func (s *scriptSegmenter) splitSentences(script string) []string {
	texts := make([]string, 0)
	rest := script
	for {
		loc := s.boundaryRegexp.FindStringIndex(rest)
		if loc == nil {
			break
		}
		sentence := s.prepareForSpeech(rest[:loc[1]])
		if sentence != "" {
			texts = append(texts, sentence)
		}
		rest = rest[loc[1]:]
	}
	if tail := s.prepareForSpeech(rest); tail != "" {
		texts = append(texts, tail)
	}
	return texts
}

func (s *scriptSegmenter) prepareForSpeech(input string) string {
	result := strings.Replace(input, "\n", " ", -1)
	result = strings.Replace(result, "\r", " ", -1)
	result = strings.Replace(result, "\t", " ", -1)
	result = strings.Join(strings.Fields(result), " ")

	return strings.TrimSpace(result)
}
