package domain

import (
	"fmt"
	"strings"
)

type Provider string

const (
	PexelsProvider  Provider = "PEXELS"
	PixabayProvider Provider = "PIXABAY"
	BothProviders   Provider = "BOTH"
)

const DefaultVoice = "en-US-AriaNeural"

func ParseProvider(raw string) (Provider, error) {
	switch Provider(strings.ToUpper(strings.TrimSpace(raw))) {
	case PexelsProvider:
		return PexelsProvider, nil
	case PixabayProvider:
		return PixabayProvider, nil
	case BothProviders, "":
		return BothProviders, nil
	}
	return "", fmt.Errorf("unknown provider %q", raw)
}

// Job is immutable once the pipeline starts.
type Job struct {
	ID       string
	Topic    string
	Script   string
	Provider Provider
	Voice    string
}

func NewJob(id string, topic string, script string, provider Provider, voice string) Job {
	if voice == "" {
		voice = DefaultVoice
	}
	if provider == "" {
		provider = BothProviders
	}
	return Job{
		ID:       id,
		Topic:    topic,
		Script:   script,
		Provider: provider,
		Voice:    voice,
	}
}

type Segment struct {
	ID      string
	JobID   string
	Text    string
	Ordinal int
}

// SegmentAudio is a segment with its synthesized narration clip.
type SegmentAudio struct {
	Segment
	FileName string
	Duration float64
}

type MediaAsset struct {
	ID       string
	Provider Provider
	URL      string
	Width    int
	Height   int
	Duration float64
}

// Key identifies an asset across merged provider result sets.
func (a MediaAsset) Key() string {
	return string(a.Provider) + "/" + a.ID
}

func (a MediaAsset) Portrait() bool {
	return a.Width <= a.Height
}

// SegmentMedia couples a narrated segment with its ranked clip candidates.
type SegmentMedia struct {
	SegmentAudio
	Candidates []MediaAsset
}

type TimelineEntry struct {
	Segment   Segment
	Asset     MediaAsset
	LocalFile string
	Start     float64
	End       float64
	Loop      bool
}

func (e TimelineEntry) Duration() float64 {
	return e.End - e.Start
}

// Timeline entries are contiguous, non-overlapping and cover TotalDuration.
type Timeline struct {
	Entries       []TimelineEntry
	AudioFile     string
	TotalDuration float64
}

type RenderedOutput struct {
	FileName string
	Duration float64
}

type PlannedEntryEvent struct {
	JobID    string  `json:"job_id"`
	Ordinal  int     `json:"ordinal"`
	Text     string  `json:"text"`
	AssetID  string  `json:"asset_id"`
	AssetURL string  `json:"asset_url"`
	Provider string  `json:"provider"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
}

func (e TimelineEntry) ToEvent(jobID string) PlannedEntryEvent {
	return PlannedEntryEvent{
		JobID:    jobID,
		Ordinal:  e.Segment.Ordinal,
		Text:     e.Segment.Text,
		AssetID:  e.Asset.ID,
		AssetURL: e.Asset.URL,
		Provider: string(e.Asset.Provider),
		Start:    e.Start,
		End:      e.End,
	}
}

type SegmentMediaAscByOrdinal []SegmentMedia

func (s SegmentMediaAscByOrdinal) Len() int           { return len(s) }
func (s SegmentMediaAscByOrdinal) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s SegmentMediaAscByOrdinal) Less(i, j int) bool { return s[i].Ordinal < s[j].Ordinal }

type SegmentAudioAscByOrdinal []SegmentAudio

func (s SegmentAudioAscByOrdinal) Len() int           { return len(s) }
func (s SegmentAudioAscByOrdinal) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s SegmentAudioAscByOrdinal) Less(i, j int) bool { return s[i].Ordinal < s[j].Ordinal }
