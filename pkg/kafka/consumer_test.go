package kafka

import (
	"context"
	"errors"
	"io"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeReader scripts FetchMessage responses and records commits.
type fakeReader struct {
	fetches   []func(ctx context.Context) (kafkago.Message, error)
	next      int
	committed []kafkago.Message
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if r.next >= len(r.fetches) {
		return kafkago.Message{}, io.EOF
	}
	fetch := r.fetches[r.next]
	r.next++
	return fetch(ctx)
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error { return nil }

func messageFetch(msg kafkago.Message) func(ctx context.Context) (kafkago.Message, error) {
	return func(context.Context) (kafkago.Message, error) { return msg, nil }
}

func TestConsume_CommitsAfterHandlerSucceeds(t *testing.T) {
	reader := &fakeReader{fetches: []func(ctx context.Context) (kafkago.Message, error){
		messageFetch(kafkago.Message{Topic: "asset.events", Offset: 7}),
	}}
	consumer := &Consumer{reader: reader, logger: zap.NewNop()}

	var handled []int64
	err := consumer.Consume(context.Background(), func(_ context.Context, msg kafkago.Message) error {
		handled = append(handled, msg.Offset)
		return nil
	})

	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, []int64{7}, handled)
	require.Len(t, reader.committed, 1)
	assert.Equal(t, int64(7), reader.committed[0].Offset)
}

func TestConsume_HandlerErrorLeavesMessageUncommitted(t *testing.T) {
	reader := &fakeReader{fetches: []func(ctx context.Context) (kafkago.Message, error){
		messageFetch(kafkago.Message{Topic: "asset.events", Offset: 7}),
	}}
	consumer := &Consumer{reader: reader, logger: zap.NewNop()}

	err := consumer.Consume(context.Background(), func(context.Context, kafkago.Message) error {
		return errors.New("handler failed")
	})

	assert.ErrorIs(t, err, io.EOF)
	assert.Empty(t, reader.committed)
}

func TestConsume_SurfacesFetchErrorWithLiveContext(t *testing.T) {
	// A closed reader reports io.EOF; with a live context the caller
	// must see the error instead of a silent nil exit.
	reader := &fakeReader{}
	consumer := &Consumer{reader: reader, logger: zap.NewNop()}

	err := consumer.Consume(context.Background(), func(context.Context, kafkago.Message) error {
		t.Fatal("handler should not be called")
		return nil
	})

	assert.ErrorIs(t, err, io.EOF)
}

func TestConsume_ReturnsContextErrOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	reader := &fakeReader{fetches: []func(ctx context.Context) (kafkago.Message, error){
		func(ctx context.Context) (kafkago.Message, error) {
			cancel()
			return kafkago.Message{}, context.Canceled
		},
	}}
	consumer := &Consumer{reader: reader, logger: zap.NewNop()}

	err := consumer.Consume(ctx, func(context.Context, kafkago.Message) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
