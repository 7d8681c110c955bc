package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"
	"strconv"
	"time"

	"bayaaz/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	userChannelPrefix = "notifications:user:"
	broadcastChannel  = "notifications:broadcast"
)

// Event is the wire envelope pushed to websocket clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// PoemPublishedPayload announces a new publication by a followed poet.
type PoemPublishedPayload struct {
	PoemID      uint                 `json:"poem_id"`
	PoetID      uint                 `json:"poet_id"`
	PoetName    string               `json:"poet_name"`
	Title       models.LocalizedText `json:"title"`
	Slug        models.LocalizedText `json:"slug"`
	Category    string               `json:"category,omitempty"`
	PublishedAt time.Time            `json:"published_at"`
}

// Notifier provides helpers to publish notifications into Redis channels
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishUser sends a notification payload to a user's channel.
func (n *Notifier) PublishUser(ctx context.Context, userID uint, payload string) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, UserChannel(userID), payload).Err()
}

// PublishBroadcast sends a notification payload to all connected users.
func (n *Notifier) PublishBroadcast(ctx context.Context, payload string) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, broadcastChannel, payload).Err()
}

// PublishPoemPublished fans a publication event out to each follower's channel.
func (n *Notifier) PublishPoemPublished(ctx context.Context, poem *models.Poem, followerIDs []uint) error {
	if n.rdb == nil || len(followerIDs) == 0 {
		return nil
	}

	event := Event{
		Type: "poem_published",
		Payload: PoemPublishedPayload{
			PoemID:      poem.ID,
			PoetID:      poem.PoetID,
			PoetName:    poem.Poet.DisplayName(),
			Title:       poem.Title,
			Slug:        poem.Slug,
			Category:    poem.Category,
			PublishedAt: poem.UpdatedAt,
		},
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal poem_published event: %w", err)
	}

	payload := string(data)
	for _, followerID := range followerIDs {
		if err := n.PublishUser(ctx, followerID, payload); err != nil {
			// Keep fanning out; one dead channel should not starve the rest.
			log.Printf("publish poem_published to user %d: %v", followerID, err)
		}
	}
	return nil
}

// StartPatternSubscriber subscribes to the user pattern and broadcast channel
// and calls onMessage for each incoming message.
func (n *Notifier) StartPatternSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, userChannelPrefix+"*", broadcastChannel)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in PatternSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}

// UserChannel derives the Redis channel name for a user.
func UserChannel(userID uint) string {
	return userChannelPrefix + strconv.FormatUint(uint64(userID), 10)
}
