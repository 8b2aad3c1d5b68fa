package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"

	"skillswap/internal/models"

	"github.com/redis/go-redis/v9"
)

// Swap event types delivered to participants.
const (
	EventSwapCreated   = "swap.created"
	EventSwapAccepted  = "swap.accepted"
	EventSwapRejected  = "swap.rejected"
	EventSwapCompleted = "swap.completed"
	EventSwapDeleted   = "swap.deleted"
	EventFeedbackGiven = "swap.feedback"
)

// SwapEvent is the payload delivered to both participants of a swap when its
// lifecycle advances.
type SwapEvent struct {
	Type   string              `json:"type"`
	SwapID uint                `json:"swap_id"`
	Swap   *models.SwapRequest `json:"swap,omitempty"`
}

// Notifier publishes swap events into per-user Redis channels.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

func userChannel(userID uint) string {
	return fmt.Sprintf("swaps:user:%d", userID)
}

// PublishUser sends a payload to a user's channel.
func (n *Notifier) PublishUser(ctx context.Context, userID uint, payload string) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, userChannel(userID), payload).Err()
}

// NotifySwap delivers a swap event to both participants. Delivery is best
// effort and never gates the transactional write that produced the event.
func (n *Notifier) NotifySwap(ctx context.Context, eventType string, swap *models.SwapRequest) {
	if n == nil || n.rdb == nil || swap == nil {
		return
	}
	payload, err := json.Marshal(SwapEvent{Type: eventType, SwapID: swap.ID, Swap: swap})
	if err != nil {
		return
	}
	if err := n.PublishUser(ctx, swap.SenderID, string(payload)); err != nil {
		log.Printf("notify sender %d: %v", swap.SenderID, err)
	}
	if err := n.PublishUser(ctx, swap.ReceiverID, string(payload)); err != nil {
		log.Printf("notify receiver %d: %v", swap.ReceiverID, err)
	}
}

// StartPatternSubscriber subscribes to `swaps:user:*` and calls onMessage for
// each incoming message. onMessage receives channel and payload.
func (n *Notifier) StartPatternSubscriber(ctx context.Context, onMessage func(channel, payload string)) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "swaps:user:*")
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
							log.Printf("PANIC in pattern subscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}
