package recorder

import (
	"bufio"
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"time"
)

// ScriptedRecognizer replays a known transcript. Each line is first reported
// as an interim result, then as final. Lines not yet reported when Stop is
// called are delivered as one final batch, like an engine finishing its
// pending results.
type ScriptedRecognizer struct {
	Lines    []string
	Interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
}

var errRecognizerRunning = errors.New("recognizer already running")

// LoadScript reads a transcript file, one utterance per non-empty line.
func LoadScript(path string) (*ScriptedRecognizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return &ScriptedRecognizer{Lines: lines}, nil
}

func (r *ScriptedRecognizer) Start(ctx context.Context) (<-chan SpeechEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stop != nil {
		return nil, errRecognizerRunning
	}
	stop := make(chan struct{})
	r.stop = stop

	events := make(chan SpeechEvent)
	go r.replay(ctx, stop, events)
	return events, nil
}

func (r *ScriptedRecognizer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stop != nil {
		close(r.stop)
		r.stop = nil
	}
}

func (r *ScriptedRecognizer) replay(ctx context.Context, stop <-chan struct{}, events chan<- SpeechEvent) {
	defer close(events)

	send := func(ev SpeechEvent) bool {
		select {
		case events <- ev:
			return true
		case <-stop:
			return false
		case <-ctx.Done():
			return false
		}
	}

	wait := func() bool {
		if r.Interval <= 0 {
			return true
		}
		t := time.NewTimer(r.Interval)
		defer t.Stop()
		select {
		case <-t.C:
			return true
		case <-stop:
			return false
		case <-ctx.Done():
			return false
		}
	}

	for i, line := range r.Lines {
		if !send(SpeechEvent{Segments: []Segment{{Text: partial(line)}}}) ||
			!wait() ||
			!send(SpeechEvent{Segments: []Segment{{Text: line, Final: true}}}) {
			r.flush(ctx, events, r.Lines[i:])
			return
		}
		if !wait() {
			r.flush(ctx, events, r.Lines[i+1:])
			return
		}
	}
}

// flush reports the remaining lines as finals. A receiver that stops
// draining for longer than drainTimeout loses them.
func (r *ScriptedRecognizer) flush(ctx context.Context, events chan<- SpeechEvent, rest []string) {
	if len(rest) == 0 || ctx.Err() != nil {
		return
	}
	segs := make([]Segment, 0, len(rest))
	for _, line := range rest {
		segs = append(segs, Segment{Text: line, Final: true})
	}
	t := time.NewTimer(drainTimeout)
	defer t.Stop()
	select {
	case events <- SpeechEvent{Segments: segs}:
	case <-ctx.Done():
	case <-t.C:
	}
}

// partial returns the first half of the words of line.
func partial(line string) string {
	words := strings.Fields(line)
	if len(words) <= 1 {
		return line
	}
	return strings.Join(words[:(len(words)+1)/2], " ")
}
