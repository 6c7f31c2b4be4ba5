package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sawant8123/storefront-service/internal/events"
	app_logger "github.com/sawant8123/storefront-service/pkg/logger"
)

const consumerName = "storefront-worker"

// OrderEventWorker drains the order event stream through a consumer group.
type OrderEventWorker struct {
	redisClient *redis.Client
	handle      func(events.OrderEvent)
}

func NewOrderEventWorker(redisClient *redis.Client) *OrderEventWorker {
	return &OrderEventWorker{
		redisClient: redisClient,
		handle:      HandleOrderEvent,
	}
}

func (w *OrderEventWorker) Start(ctx context.Context) {
	err := w.redisClient.XGroupCreateMkStream(ctx, events.OrderStreamKey, events.OrderGroup, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		log.Printf("Failed to create consumer group: %v", err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			log.Println("OrderEventConsumer shutting down.")
			return
		default:
			streams, err := w.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
				Group:    events.OrderGroup,
				Consumer: consumerName,
				Streams:  []string{events.OrderStreamKey, ">"},
				Count:    50,
				Block:    5 * time.Second,
			}).Result()

			if errors.Is(err, redis.Nil) {
				continue
			}
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				log.Printf("Error reading from stream: %v", err)
				time.Sleep(1 * time.Second)
				continue
			}

			for _, stream := range streams {
				for _, msg := range stream.Messages {
					event, err := DecodeOrderEvent(msg.Values)
					if err != nil {
						log.Printf("Failed to decode event %s: %v", msg.ID, err)
					} else {
						w.handle(event)
					}

					if err := w.redisClient.XAck(ctx, events.OrderStreamKey, events.OrderGroup, msg.ID).Err(); err != nil {
						log.Printf("Failed to ack event %s: %v", msg.ID, err)
					}
				}
			}
		}
	}
}

// DecodeOrderEvent reads the JSON payload stored under the "event" field.
func DecodeOrderEvent(values map[string]interface{}) (events.OrderEvent, error) {
	var event events.OrderEvent

	var raw []byte
	switch v := values["event"].(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return event, fmt.Errorf("missing event payload")
	}

	if err := json.Unmarshal(raw, &event); err != nil {
		return event, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if event.Type == "" || event.OrderID == "" {
		return event, fmt.Errorf("incomplete event: %s", raw)
	}
	return event, nil
}

func HandleOrderEvent(event events.OrderEvent) {
	if event.Type == events.OrderEscalated {
		app_logger.LogEscalation(event.OrderID, event.UserID)
		return
	}
	app_logger.LogOrderEvent(string(event.Type), event.OrderID, event.UserID, event.Timestamp)
}
