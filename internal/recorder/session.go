package recorder

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/voicenotes/internal/logging"
)

// drainTimeout bounds how long teardown waits for flushed chunks and late
// recognition results.
const drainTimeout = 2 * time.Second

type Option func(*Session)

// WithLimit overrides DefaultLimit. Non-positive values are ignored.
func WithLimit(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.limit = d
		}
	}
}

// WithRecognizer enables transcription. Without one the transcript is empty.
func WithRecognizer(r Recognizer) Option {
	return func(s *Session) { s.recognizer = r }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// Session is one Idle -> Recording -> Stopped capture attempt. Start and
// Stop are safe for concurrent use and return immediately once the device
// is acquired; the result becomes available when Done is closed.
type Session struct {
	source     AudioSource
	recognizer Recognizer
	limit      time.Duration
	logger     logging.Logger

	mu     sync.Mutex
	state  State
	result Result

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func New(source AudioSource, opts ...Option) *Session {
	s := &Session{
		source: source,
		limit:  DefaultLimit,
		logger: logging.Nop(),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("module", "recorder")
	return s
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start acquires the audio device and begins recording. It is a no-op
// unless the session is Idle. A device failure leaves the session Idle and
// is reported as ErrDeviceUnavailable.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Idle {
		return nil
	}

	stream, err := s.source.Open(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}

	var events <-chan SpeechEvent
	rec := s.recognizer
	if rec != nil {
		events, err = rec.Start(ctx)
		if err != nil {
			s.logger.Warn(ctx, "speech recognition unavailable, recording without transcript", "error", err)
			rec, events = nil, nil
		}
	}

	s.state = Recording
	go s.run(ctx, stream, rec, events)
	return nil
}

// Stop ends a recording session. It is a no-op unless the session is
// Recording and returns without waiting for teardown.
func (s *Session) Stop() {
	if s.State() != Recording {
		return
	}
	s.stopOnce.Do(func() { close(s.stop) })
}

// Done is closed once the session has stopped and its result is ready.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Result returns the session artifacts once the session has stopped.
func (s *Session) Result() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.state == Stopped
}

// Wait blocks until the session stops or ctx is done.
func (s *Session) Wait(ctx context.Context) (Result, error) {
	select {
	case <-s.done:
		r, _ := s.Result()
		return r, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// run is the single owner of the buffer and transcript. Every stop path
// ends here, so the device and recognizer are released exactly once.
func (s *Session) run(ctx context.Context, stream AudioStream, rec Recognizer, events <-chan SpeechEvent) {
	timer := time.NewTimer(s.limit)
	defer timer.Stop()

	var (
		buf        bytes.Buffer
		count      int
		transcript Transcript
		reason     StopReason
	)

	appendChunk := func(c []byte) {
		if len(c) == 0 {
			return
		}
		buf.Write(c)
		count++
	}

	chunks := stream.Chunks()

loop:
	for {
		select {
		case c, ok := <-chunks:
			if !ok {
				chunks = nil
				reason = StopSourceEnded
				break loop
			}
			appendChunk(c)
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			transcript.Apply(ev)
		case <-timer.C:
			reason = StopTimeout
			break loop
		case <-s.stop:
			reason = StopManual
			break loop
		case <-ctx.Done():
			reason = StopCancelled
			break loop
		}
	}

	if rec != nil {
		rec.Stop()
	}
	if err := stream.Close(); err != nil {
		s.logger.Warn(ctx, "error releasing audio device", "error", err)
	}

	deadline := time.NewTimer(drainTimeout)
	defer deadline.Stop()

drain:
	for chunks != nil || events != nil {
		select {
		case c, ok := <-chunks:
			if !ok {
				chunks = nil
				continue
			}
			appendChunk(c)
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			transcript.Apply(ev)
		case <-deadline.C:
			s.logger.Warn(ctx, "gave up waiting for audio stream or recognizer to finish")
			break drain
		}
	}

	s.mu.Lock()
	s.result = Result{
		Blob:       newBlob(buf.Bytes()),
		Transcript: transcript.String(),
		Reason:     reason,
		Chunks:     count,
	}
	s.state = Stopped
	s.mu.Unlock()

	s.logger.Debug(ctx, "recording stopped", "reason", reason.String(), "chunks", count, "bytes", buf.Len())
	close(s.done)
}
