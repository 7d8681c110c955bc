package notifications

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"bayaaz/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_PublishUser_NilRedis(t *testing.T) {
	// Notifier with nil Redis should return nil error (fail-open/noop)
	n := NewNotifier(nil)
	err := n.PublishUser(context.Background(), 1, "test payload")
	assert.NoError(t, err)
}

func TestUserChannel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		userID   uint
		expected string
	}{
		{1, "notifications:user:1"},
		{100, "notifications:user:100"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, UserChannel(tt.userID))
	}
}

func TestNotifier_PublishPoemPublished(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	ctx := context.Background()
	sub := rdb.Subscribe(ctx, UserChannel(5), UserChannel(8))
	defer func() { _ = sub.Close() }()
	ch := sub.Channel()

	poem := &models.Poem{
		ID:     3,
		PoetID: 2,
		Poet:   models.User{ID: 2, Username: "ghalib", PenName: "Mirza Ghalib", IsPoet: true},
		Title:  models.LocalizedText{"en": "The Heart"},
		Slug:   models.LocalizedText{"en": "the-heart"},
	}

	n := NewNotifier(rdb)
	require.NoError(t, n.PublishPoemPublished(ctx, poem, []uint{5, 8}))

	got := 0
	timeout := time.After(time.Second)
	for got < 2 {
		select {
		case msg := <-ch:
			var event Event
			require.NoError(t, json.Unmarshal([]byte(msg.Payload), &event))
			assert.Equal(t, "poem_published", event.Type)
			got++
		case <-timeout:
			t.Fatalf("expected 2 events, got %d", got)
		}
	}
}

func TestNotifier_PatternSubscriber_StopsOnCancel(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var received int32
	payloads := make(chan string, 2)
	require.NoError(t, n.StartPatternSubscriber(ctx, func(_ string, payload string) {
		atomic.AddInt32(&received, 1)
		payloads <- payload
	}))

	require.NoError(t, n.PublishUser(context.Background(), 1, "before-cancel"))
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&received) >= 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	time.Sleep(20 * time.Millisecond)

	// Drain the pre-cancel message to avoid false positives.
	select {
	case <-payloads:
	default:
	}

	require.NoError(t, n.PublishUser(context.Background(), 1, "after-cancel"))
	assert.Never(t, func() bool {
		select {
		case payload := <-payloads:
			return payload == "after-cancel"
		default:
			return false
		}
	}, 200*time.Millisecond, 10*time.Millisecond)
}
