package recorder

import (
	"context"
	"io"
	"os"
	"sync"
	"time"
)

// DefaultChunkSize is the read size of FileSource when none is set.
const DefaultChunkSize = 16 * 1024

// FileSource plays back an existing recording as if it came from a device.
// Interval, when set, paces chunks to mimic a live input.
type FileSource struct {
	Path      string
	ChunkSize int
	Interval  time.Duration
}

func (f *FileSource) Open(ctx context.Context) (AudioStream, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}

	size := f.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}

	s := &readerStream{
		r:        file,
		closer:   file,
		size:     size,
		interval: f.Interval,
		chunks:   make(chan []byte),
		closed:   make(chan struct{}),
	}
	go s.pump()
	return s, nil
}

// readerStream turns an io.Reader into a chunk stream. The channel is closed
// at end of input or after Close.
type readerStream struct {
	r        io.Reader
	closer   io.Closer
	size     int
	interval time.Duration

	chunks    chan []byte
	closed    chan struct{}
	closeOnce sync.Once
}

func (s *readerStream) Chunks() <-chan []byte {
	return s.chunks
}

func (s *readerStream) Close() error {
	s.closeOnce.Do(func() { close(s.closed) })
	return nil
}

func (s *readerStream) pump() {
	defer close(s.chunks)
	defer s.closer.Close()

	var tick <-chan time.Time
	if s.interval > 0 {
		t := time.NewTicker(s.interval)
		defer t.Stop()
		tick = t.C
	}

	for {
		buf := make([]byte, s.size)
		n, err := io.ReadFull(s.r, buf)
		if n > 0 {
			select {
			case s.chunks <- buf[:n]:
			case <-s.closed:
				return
			}
		}
		// EOF, a short final read or a read failure all end the stream.
		if err != nil {
			return
		}
		if tick != nil {
			select {
			case <-tick:
			case <-s.closed:
				return
			}
		}
	}
}
