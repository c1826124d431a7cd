package models

import (
	"math"
	"testing"
)

func TestTranscriptDurationSeconds(t *testing.T) {
	tests := []struct {
		name       string
		transcript *Transcript
		want       int
	}{
		{"nil transcript", nil, FallbackDurationSeconds},
		{"missing duration", &Transcript{}, FallbackDurationSeconds},
		{"negative duration", &Transcript{Duration: -4}, FallbackDurationSeconds},
		{"whole seconds", &Transcript{Duration: 212}, 212},
		{"fractional rounds up", &Transcript{Duration: 212.01}, 213},
		{"NaN falls back", &Transcript{Duration: math.NaN()}, FallbackDurationSeconds},
		{"huge duration is capped", &Transcript{Duration: 1e300}, MaxDurationSeconds},
		{"infinite duration is capped", &Transcript{Duration: math.Inf(1)}, MaxDurationSeconds},
		{"just under the cap", &Transcript{Duration: MaxDurationSeconds - 0.5}, MaxDurationSeconds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.transcript.DurationSeconds(); got != tt.want {
				t.Errorf("DurationSeconds() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDefaultThumbnailURL(t *testing.T) {
	want := "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg"
	if got := DefaultThumbnailURL("dQw4w9WgXcQ"); got != want {
		t.Errorf("DefaultThumbnailURL() = %q, want %q", got, want)
	}
}

func TestVideoUpdateIsEmpty(t *testing.T) {
	if !(VideoUpdate{}).IsEmpty() {
		t.Error("expected zero update to be empty")
	}
	title := "A"
	if (VideoUpdate{Title: &title}).IsEmpty() {
		t.Error("expected update with title to be non-empty")
	}
}
