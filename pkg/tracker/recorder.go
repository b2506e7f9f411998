package tracker

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/dnaeon/go-vcr.v2/cassette"
	vcr "gopkg.in/dnaeon/go-vcr.v2/recorder"
)

type recorderMode int

const (
	// modeReplay uses existing fixtures only.
	modeReplay recorderMode = iota
	// modeRecord records new fixtures, overwriting existing ones.
	modeRecord
)

func getRecorderMode() recorderMode {
	if os.Getenv("PULLPILOT_VCR_MODE") == "record" {
		return modeRecord
	}
	return modeReplay
}

// Recorder wraps a go-vcr recorder for tracker API contract tests.
type Recorder struct {
	recorder *vcr.Recorder
	mode     recorderMode
}

// NewRecorder creates a VCR recorder backed by
// testdata/fixtures/<name>.yaml. In replay mode (the default) a missing
// cassette surfaces as os.ErrNotExist so callers can skip the test; set
// PULLPILOT_VCR_MODE=record with real tracker credentials to record
// fresh fixtures.
func NewRecorder(t *testing.T, name string) (*Recorder, error) {
	t.Helper()

	mode := getRecorderMode()
	fixturePath := filepath.Join("testdata", "fixtures", name)

	vcrMode := vcr.ModeReplaying
	if mode == modeRecord {
		vcrMode = vcr.ModeRecording
	}

	r, err := vcr.NewAsMode(fixturePath, vcrMode, nil)
	if err != nil {
		if errors.Is(err, cassette.ErrCassetteNotFound) {
			return nil, fmt.Errorf("cassette %q not found: %w", fixturePath, os.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to create recorder: %w", err)
	}

	// Keep credentials out of saved cassettes.
	r.AddSaveFilter(func(i *cassette.Interaction) error {
		delete(i.Request.Headers, "Authorization")
		return nil
	})

	return &Recorder{recorder: r, mode: mode}, nil
}

// Stop stops the recorder and flushes recorded interactions.
func (r *Recorder) Stop() error {
	if r.recorder != nil {
		if err := r.recorder.Stop(); err != nil {
			return fmt.Errorf("failed to stop recorder: %w", err)
		}
	}
	return nil
}

// IsRecording reports whether new fixtures are being recorded.
func (r *Recorder) IsRecording() bool {
	return r.mode == modeRecord
}

// HTTPClient returns an HTTP client that routes through the recorder.
func (r *Recorder) HTTPClient() *http.Client {
	return &http.Client{Transport: r.recorder}
}
