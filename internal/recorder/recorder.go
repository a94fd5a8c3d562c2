// Package recorder implements a single voice-capture session: it owns an
// audio input stream and an optional speech recognizer, buffers audio chunks
// in arrival order, tracks the best-effort transcript and produces exactly
// one audio blob when the session stops, manually or on its time limit.
package recorder

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/voicenotes/internal/common"
)

// DefaultLimit caps a session when no limit is configured.
const DefaultLimit = 60 * time.Second

// ErrDeviceUnavailable is returned by Start when the audio input cannot be
// acquired. It is the only error a session reports.
var ErrDeviceUnavailable = errors.New("audio input device unavailable")

// AudioSource acquires the audio input device.
type AudioSource interface {
	Open(ctx context.Context) (AudioStream, error)
}

// AudioStream delivers recorded audio. Close releases the device; buffered
// audio is flushed to Chunks, which is then closed.
type AudioStream interface {
	Chunks() <-chan []byte
	Close() error
}

// Segment is one recognition result, interim or final.
type Segment struct {
	Text  string
	Final bool
}

// SpeechEvent is one batch of results from a recognizer.
type SpeechEvent struct {
	Segments []Segment
}

// Recognizer produces speech events while running. After Stop it delivers
// any pending results and closes the event channel.
type Recognizer interface {
	Start(ctx context.Context) (<-chan SpeechEvent, error)
	Stop()
}

type State int

const (
	Idle State = iota
	Recording
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// StopReason tells what ended a session.
type StopReason int

const (
	// StopManual means Stop was called.
	StopManual StopReason = iota + 1
	// StopTimeout means the time limit elapsed.
	StopTimeout
	// StopSourceEnded means the audio source ran out, e.g. end of file.
	StopSourceEnded
	// StopCancelled means the context passed to Start was cancelled.
	StopCancelled
)

func (r StopReason) String() string {
	switch r {
	case StopManual:
		return "manual"
	case StopTimeout:
		return "timeout"
	case StopSourceEnded:
		return "source ended"
	case StopCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Blob is the assembled recording.
type Blob struct {
	Data      []byte
	MediaType string
}

func newBlob(data []byte) Blob {
	return Blob{Data: data, MediaType: common.AudioMediaType}
}

// Result holds the artifacts of a stopped session.
type Result struct {
	Blob       Blob
	Transcript string
	Reason     StopReason
	Chunks     int
}
