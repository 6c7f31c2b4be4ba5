package app_logger

import (
	"log"
	"time"
)

func LogOrderEvent(eventType, orderID, userID string, at time.Time) {
	log.Printf("Order event %s: order=%s user=%s at=%s", eventType, orderID, userID, at.Format(time.RFC3339))
}

func LogEscalation(orderID, userID string) {
	log.Printf("🚨 Escalation received for order %s (user %s)", orderID, userID)
}
