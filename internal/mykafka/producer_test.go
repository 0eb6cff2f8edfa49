package mykafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublishEvent(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{writer: w}

	event := map[string]any{"type": "product_created", "product_id": 7}
	require.NoError(t, p.PublishEvent(context.Background(), "product_events", "7", event))

	require.Len(t, w.msgs, 1)
	require.Equal(t, "product_events", w.msgs[0].Topic)
	require.Equal(t, "7", string(w.msgs[0].Key))

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	require.Equal(t, "product_created", got["type"])
	require.EqualValues(t, 7, got["product_id"])

	require.NoError(t, p.Close())
	require.True(t, w.closed)
}

func TestPublishEventWrapsWriterError(t *testing.T) {
	boom := errors.New("broker down")
	p := &Producer{writer: &fakeWriter{err: boom}}

	err := p.PublishEvent(context.Background(), "cart_events", "1", map[string]any{"type": "x"})
	require.ErrorIs(t, err, boom)
}

func TestProducerWithoutBrokersIsNoop(t *testing.T) {
	p := NewProducer(nil)

	require.False(t, p.Enabled())
	require.NoError(t, p.PublishEvent(context.Background(), "t", "k", map[string]any{}))
	require.NoError(t, p.Close())
}

func TestNewProducerWithBrokers(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"})
	require.True(t, p.Enabled())
	require.NoError(t, p.Close())
}
