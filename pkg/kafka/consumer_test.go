package kafka

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"salonbook/pkg/logger"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReader serves a fixed list of messages and then reports io.EOF.
type fakeReader struct {
	mu        sync.Mutex
	pending   []kafka.Message
	committed []int64
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return kafka.Message{}, err
	}
	if len(r.pending) == 0 {
		return kafka.Message{}, io.EOF
	}
	msg := r.pending[0]
	r.pending = r.pending[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error { return nil }

func newTestConsumer(reader *fakeReader, dlq *fakeWriter, handler MessageHandler) *Consumer {
	c := &Consumer{
		reader:     reader,
		topic:      "bookings.created",
		groupID:    "notifier",
		maxRetries: 2,
		handler:    handler,
		log:        logger.NewNop(),
	}
	if dlq != nil {
		c.dlqWriter = dlq
	}
	return c
}

func record(offset int64, eventID string) kafka.Message {
	return kafka.Message{
		Topic:   "bookings.created",
		Offset:  offset,
		Key:     []byte("k"),
		Value:   []byte(`{}`),
		Headers: []kafka.Header{{Key: HeaderEventID, Value: []byte(eventID)}},
	}
}

func TestConsumer_HandlesAndCommits(t *testing.T) {
	reader := &fakeReader{pending: []kafka.Message{record(1, "e1"), record(2, "e2")}}

	var seen []string
	c := newTestConsumer(reader, nil, func(_ context.Context, msg Message) error {
		seen = append(seen, msg.GetEventID())
		return nil
	})

	err := c.Start(context.Background())
	assert.ErrorIs(t, err, ErrConsumerClosed)
	assert.Equal(t, []string{"e1", "e2"}, seen)
	assert.Equal(t, []int64{1, 2}, reader.committed)
}

func TestConsumer_RetriesTransientThenSucceeds(t *testing.T) {
	reader := &fakeReader{pending: []kafka.Message{record(7, "e7")}}

	attempts := 0
	c := newTestConsumer(reader, &fakeWriter{}, func(_ context.Context, msg Message) error {
		attempts++
		if attempts < 3 {
			return NewTransientError("smtp busy", nil)
		}
		assert.Equal(t, 2, msg.GetRetryCount())
		return nil
	})

	_ = c.Start(context.Background())
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []int64{7}, reader.committed)
}

func TestConsumer_PermanentFailureGoesToDLQ(t *testing.T) {
	reader := &fakeReader{pending: []kafka.Message{record(3, "e3")}}
	dlq := &fakeWriter{}

	attempts := 0
	c := newTestConsumer(reader, dlq, func(context.Context, Message) error {
		attempts++
		return NewPermanentError("deserialization failed", errors.New("bad json"))
	})

	_ = c.Start(context.Background())
	assert.Equal(t, 1, attempts)
	require.Len(t, dlq.msgs, 1)
	assert.Equal(t, "notifier", dlq.header(0, headerDLQGroup))
	assert.Equal(t, "e3", dlq.header(0, HeaderEventID))
	assert.Equal(t, []int64{3}, reader.committed, "parked messages are committed")
}

func TestConsumer_ExhaustedRetriesGoToDLQ(t *testing.T) {
	reader := &fakeReader{pending: []kafka.Message{record(4, "e4")}}
	dlq := &fakeWriter{}

	attempts := 0
	c := newTestConsumer(reader, dlq, func(context.Context, Message) error {
		attempts++
		return NewTransientError("timeout", nil)
	})

	_ = c.Start(context.Background())
	assert.Equal(t, 3, attempts, "one try plus maxRetries retries")
	assert.Len(t, dlq.msgs, 1)
}

func TestConsumer_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestConsumer(&fakeReader{}, nil, func(context.Context, Message) error { return nil })
	assert.ErrorIs(t, c.Start(ctx), context.Canceled)

	done := make(chan struct{})
	go func() {
		_ = c.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close did not return")
	}
	assert.ErrorIs(t, c.Start(context.Background()), ErrConsumerClosed)
}
