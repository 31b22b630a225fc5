package kafkaconsumer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/IBM/sarama"

	"github.com/openbiodata/beacon-api/internal/invalidation"
)

type fakeCache struct {
	failFirst atomic.Bool
	mu        sync.Mutex
	purged    []string
}

func (f *fakeCache) Get(_ context.Context, _ string) ([]byte, bool, error) { return nil, false, nil }
func (f *fakeCache) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error {
	return nil
}
func (f *fakeCache) Del(_ context.Context, _ ...string) error { return nil }

func (f *fakeCache) DelPrefix(_ context.Context, prefix string) (int, error) {
	f.mu.Lock()
	f.purged = append(f.purged, prefix)
	f.mu.Unlock()
	if f.failFirst.Load() {
		f.failFirst.Store(false)
		return 0, errors.New("boom")
	}
	return 3, nil
}

type sess struct {
	ctx    context.Context
	mu     sync.Mutex
	marked []int64
}

func (s *sess) Claims() map[string][]int32 { return nil }
func (s *sess) MemberID() string           { return "" }
func (s *sess) GenerationID() int32        { return 0 }
func (s *sess) MarkMessage(m *sarama.ConsumerMessage, _ string) {
	s.mu.Lock()
	s.marked = append(s.marked, m.Offset)
	s.mu.Unlock()
}
func (s *sess) ResetOffset(_ string, _ int32, _ int64, _ string) {}
func (s *sess) MarkOffset(_ string, _ int32, _ int64, _ string)  {}
func (s *sess) Context() context.Context                         { return s.ctx }
func (s *sess) Errors() <-chan error                             { return nil }
func (s *sess) Commit()                                          {}

type claim struct {
	part int32
	msgs chan *sarama.ConsumerMessage
}

func (c *claim) Topic() string                            { return "beacon-data-changes" }
func (c *claim) Partition() int32                         { return c.part }
func (c *claim) InitialOffset() int64                     { return 0 }
func (c *claim) HighWaterMarkOffset() int64               { return 0 }
func (c *claim) Messages() <-chan *sarama.ConsumerMessage { return c.msgs }

func eventBytes(entryType, recordID string, seq uint64) []byte {
	ev := invalidation.Event{
		Version: 1, Op: "update", EntryType: entryType, RecordID: recordID,
		Seq: seq, TS: time.Now().UTC(),
	}
	b, _ := json.Marshal(ev)
	return b
}

func newConsumerForTest(fc *fakeCache) *Consumer {
	cfg := Config{Brokers: []string{"x"}, Topic: "beacon-data-changes", GroupID: "g"}
	return New(cfg, slog.Default(), fc)
}

func TestSinglePartition_OrderAndCommitAfterWork(t *testing.T) {
	fc := &fakeCache{}
	c := newConsumerForTest(fc)

	g := &groupHandler{process: c.ProcessOne}
	ctx := context.Background()
	s := &sess{ctx: ctx}
	ch := make(chan *sarama.ConsumerMessage, 2)
	cl := &claim{part: 0, msgs: ch}

	ch <- &sarama.ConsumerMessage{Topic: "beacon-data-changes", Partition: 0, Offset: 10, Value: eventBytes("individual", "ind-1", 0)}
	ch <- &sarama.ConsumerMessage{Topic: "beacon-data-changes", Partition: 0, Offset: 11, Value: eventBytes("biosample", "bs-1", 0)}
	close(ch)

	if err := g.ConsumeClaim(s, cl); err != nil {
		t.Fatalf("ConsumeClaim: %v", err)
	}

	if len(s.marked) != 2 || s.marked[0] != 10 || s.marked[1] != 11 {
		t.Fatalf("marked offsets=%v want [10 11]", s.marked)
	}
	if len(fc.purged) != 2 || fc.purged[0] != "beacon:individual:" || fc.purged[1] != "beacon:biosample:" {
		t.Fatalf("purged prefixes=%v", fc.purged)
	}
}

func TestRetry_CommitOnceAfterSuccess(t *testing.T) {
	fc := &fakeCache{}
	fc.failFirst.Store(true)
	c := newConsumerForTest(fc)
	ctx := context.Background()

	msg := &sarama.ConsumerMessage{Topic: "beacon-data-changes", Partition: 0, Offset: 5, Value: eventBytes("individual", "ind-1", 0)}
	if err := c.ProcessOne(ctx, msg); err == nil {
		t.Fatalf("expected error on first attempt")
	}

	s := &sess{ctx: ctx}
	g := &groupHandler{process: c.ProcessOne}
	ch := make(chan *sarama.ConsumerMessage, 1)
	ch <- msg
	close(ch)
	if err := g.ConsumeClaim(s, &claim{part: 0, msgs: ch}); err != nil {
		t.Fatalf("ConsumeClaim second attempt: %v", err)
	}
	if len(s.marked) != 1 || s.marked[0] != 5 {
		t.Fatalf("offset was not marked after success; marked=%v", s.marked)
	}
}

func TestProcessOne_SkipsStaleSeq(t *testing.T) {
	fc := &fakeCache{}
	c := newConsumerForTest(fc)
	ctx := context.Background()

	first := &sarama.ConsumerMessage{Offset: 1, Value: eventBytes("individual", "ind-1", 7)}
	stale := &sarama.ConsumerMessage{Offset: 2, Value: eventBytes("individual", "ind-1", 7)}

	if err := c.ProcessOne(ctx, first); err != nil {
		t.Fatalf("first: %v", err)
	}
	if err := c.ProcessOne(ctx, stale); err != nil {
		t.Fatalf("stale: %v", err)
	}
	if len(fc.purged) != 1 {
		t.Fatalf("stale redelivery purged cache again; purges=%v", fc.purged)
	}
}

func TestProcessOne_DropsInvalidEventWithoutError(t *testing.T) {
	fc := &fakeCache{}
	c := newConsumerForTest(fc)

	bad, _ := json.Marshal(invalidation.Event{Version: 1, Op: "upsert", EntryType: "individual", TS: time.Now().UTC()})
	msg := &sarama.ConsumerMessage{Offset: 3, Value: bad}
	if err := c.ProcessOne(context.Background(), msg); err != nil {
		t.Fatalf("invalid event should be dropped, not retried: %v", err)
	}
	if len(fc.purged) != 0 {
		t.Fatalf("invalid event must not purge cache")
	}
}

func TestProcessOne_DecodeErrorIsRetryable(t *testing.T) {
	fc := &fakeCache{}
	c := newConsumerForTest(fc)

	msg := &sarama.ConsumerMessage{Offset: 4, Value: []byte("{not json")}
	if err := c.ProcessOne(context.Background(), msg); err == nil {
		t.Fatalf("expected decode error")
	}
}
