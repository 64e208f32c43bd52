package events

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gecapi/internal/logging"
	"gecapi/internal/model"
)

func sampleEvent() Event {
	c := &model.Courrier{
		ID:        "c1",
		Number:    "GEC-2025-0001",
		Status:    model.CourrierInProgress,
		Version:   2,
		UpdatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	e := NewEvent(CourrierTransmitted, c)
	e.NodeID = "n1"
	e.ActionID = "a9"
	e.ActionType = model.ActionTransmettre
	e.NewNodeIDs = []string{"n2", "n3"}
	return e
}

func TestWatermillPublisher_Publish(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := NewGoChannel(10, logging.Discard())
	defer pubSub.Close()

	messages, err := pubSub.Subscribe(ctx, "courriers")
	require.NoError(t, err)

	pub := NewWatermillPublisher(pubSub, "courriers")
	want := sampleEvent()
	require.NoError(t, pub.Publish(ctx, want))

	select {
	case msg := <-messages:
		assert.Equal(t, "courrier.transmitted", msg.Metadata.Get(MetadataEventType))
		assert.Equal(t, "c1", msg.Metadata.Get(MetadataCourrierID))
		got, err := Decode(msg)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		msg.Ack()
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}

type failingPublisher struct{}

func (failingPublisher) Publish(string, ...*message.Message) error { return errors.New("broker down") }
func (failingPublisher) Close() error                               { return nil }

func TestWatermillPublisher_Error(t *testing.T) {
	err := NewWatermillPublisher(failingPublisher{}, "courriers").Publish(context.Background(), sampleEvent())
	assert.EqualError(t, err, "broker down")
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode(message.NewMessage("m1", []byte("not json")))
	assert.ErrorContains(t, err, "decode event m1")
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunAuditLog(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := NewGoChannel(10, logging.Discard())
	defer pubSub.Close()

	var out syncBuffer
	require.NoError(t, RunAuditLog(ctx, pubSub, "courriers", logging.New(&out, time.UTC, slog.LevelInfo)))

	require.NoError(t, NewWatermillPublisher(pubSub, "courriers").Publish(ctx, sampleEvent()))
	require.NoError(t, pubSub.Publish("courriers", message.NewMessage("bad", []byte("{"))))

	assert.Eventually(t, func() bool {
		s := out.String()
		return strings.Contains(s, `"msg":"courrier_event"`) && strings.Contains(s, `"msg":"event_decode_failed"`)
	}, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, out.String(), `"courrier_id":"c1"`)
}
