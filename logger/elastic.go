package logger

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap/zapcore"
)

const (
	// elasticQueueDepth bounds the number of rendered documents waiting for
	// the background worker. When the queue is full the newest document is
	// dropped and reported; delivery is best-effort, never backpressure.
	elasticQueueDepth = 1024

	// elasticRequestTimeout caps a single index push.
	elasticRequestTimeout = 5 * time.Second

	// elasticFlushTimeout bounds how long Sync/Close wait for the worker to
	// drain the queue.
	elasticFlushTimeout = 5 * time.Second
)

// esDocument is one rendered envelope bound for a dated index.
type esDocument struct {
	index string
	body  []byte
}

// elasticSink pushes rendered log envelopes to an Elasticsearch endpoint,
// one document per event, into the dated index "<prefix>-<YYYY.MM.DD>".
//
// Every document passes through one buffered FIFO channel drained by a
// single worker goroutine. The single worker is what preserves per-logger
// ordering: a later emit can never be indexed ahead of an earlier one, and
// the caller never waits on the network. A failed push is reported to the
// fallback writer and dropped; there is no retry and no redelivery.
type elasticSink struct {
	host     string
	prefix   string
	client   *http.Client
	fallback io.Writer

	mu     sync.RWMutex
	closed bool
	queue  chan esDocument
	done   chan struct{}
}

// newElasticSink creates the sink and starts its worker. The endpoint is not
// probed; an unreachable host surfaces at first push, on the fallback
// channel.
func newElasticSink(host, prefix string) *elasticSink {
	s := &elasticSink{
		host:     strings.TrimRight(host, "/"),
		prefix:   prefix,
		client:   &http.Client{Timeout: elasticRequestTimeout},
		fallback: os.Stderr,
		queue:    make(chan esDocument, elasticQueueDepth),
		done:     make(chan struct{}),
	}
	go s.worker()
	return s
}

// indexName computes the dated index for an event emitted at t.
func (s *elasticSink) indexName(t time.Time) string {
	return s.prefix + "-" + t.UTC().Format("2006.01.02")
}

// enqueue hands one document to the worker without blocking the caller.
func (s *elasticSink) enqueue(doc esDocument) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return errSinkClosed
	}
	select {
	case s.queue <- doc:
		return nil
	default:
		return errQueueFull
	}
}

// worker drains the queue in FIFO order until the sink is closed.
func (s *elasticSink) worker() {
	defer close(s.done)
	for doc := range s.queue {
		if err := s.push(doc); err != nil {
			fmt.Fprintf(s.fallback, "failed to send log to elasticsearch: %v\n", err)
		}
	}
}

// push performs a single document-index request.
func (s *elasticSink) push(doc esDocument) error {
	url := s.host + "/" + doc.index + "/_doc"
	resp, err := s.client.Post(url, "application/json", bytes.NewReader(doc.body))
	if err != nil {
		return err
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("index %s: unexpected status %s", doc.index, resp.Status)
	}
	return nil
}

// flush waits, bounded by elasticFlushTimeout, for the queue to drain.
// Documents already handed to the worker are given a chance to go out; a
// slow or unreachable endpoint cannot stall shutdown beyond the bound.
func (s *elasticSink) flush() error {
	deadline := time.Now().Add(elasticFlushTimeout)
	for len(s.queue) > 0 {
		if time.Now().After(deadline) {
			return fmt.Errorf("elasticsearch flush timed out with %d queued documents", len(s.queue))
		}
		time.Sleep(10 * time.Millisecond)
	}
	return nil
}

// Close drains the queue and stops the worker, bounded by the flush timeout.
func (s *elasticSink) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()

	select {
	case <-s.done:
		return nil
	case <-time.After(elasticFlushTimeout):
		return fmt.Errorf("elasticsearch close timed out with documents in flight")
	}
}

// elasticCore is the zapcore.Core that feeds the sink. It renders the entry
// once with its own clone of the shared envelope encoder and enqueues the
// resulting bytes; everything network-related happens on the worker.
type elasticCore struct {
	zapcore.LevelEnabler
	enc  zapcore.Encoder
	sink *elasticSink
}

func newElasticCore(enc zapcore.Encoder, sink *elasticSink, enab zapcore.LevelEnabler) zapcore.Core {
	return &elasticCore{
		LevelEnabler: enab,
		enc:          enc,
		sink:         sink,
	}
}

func (c *elasticCore) With(fields []zapcore.Field) zapcore.Core {
	clone := c.enc.Clone()
	for i := range fields {
		fields[i].AddTo(clone)
	}
	return &elasticCore{
		LevelEnabler: c.LevelEnabler,
		enc:          clone,
		sink:         c.sink,
	}
}

func (c *elasticCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *elasticCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	buf, err := c.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	body := make([]byte, buf.Len())
	copy(body, buf.Bytes())
	buf.Free()
	return c.sink.enqueue(esDocument{index: c.sink.indexName(ent.Time), body: body})
}

func (c *elasticCore) Sync() error {
	return c.sink.flush()
}
