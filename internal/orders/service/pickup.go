package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sawant8123/storefront-service/internal/model"
)

const (
	DefaultCourier      = "Delhivery"
	PickupStatusBooked  = "Pickup Scheduled"
	defaultPickupLeadIn = 48 * time.Hour
)

// ReversePickup books a courier collection for a returned order.
type ReversePickup interface {
	SchedulePickup(ctx context.Context, orderID string) (*model.PickupRecord, error)
}

// SimulatedCourier books every pickup two days out without calling anyone.
type SimulatedCourier struct {
	Courier string
	LeadIn  time.Duration
	now     func() time.Time
}

func NewSimulatedCourier() *SimulatedCourier {
	return &SimulatedCourier{
		Courier: DefaultCourier,
		LeadIn:  defaultPickupLeadIn,
		now:     time.Now,
	}
}

func (c *SimulatedCourier) SchedulePickup(ctx context.Context, orderID string) (*model.PickupRecord, error) {
	record := &model.PickupRecord{
		Courier:       c.Courier,
		ScheduledDate: c.now().Add(c.LeadIn),
		Status:        PickupStatusBooked,
		TrackingID:    uuid.NewString(),
	}
	log.Printf("📦 Reverse pickup scheduled for order %s with %s on %s (tracking %s)",
		orderID, record.Courier, record.ScheduledDate.UTC().Format(model.DateLayout), record.TrackingID)
	return record, nil
}
