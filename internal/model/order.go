package model

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DateLayout = "2006-01-02"

type OrderStatus string

const (
	OrderStatusPlaced          OrderStatus = "Placed"
	OrderStatusShipped         OrderStatus = "Shipped"
	OrderStatusDelivered       OrderStatus = "Delivered"
	OrderStatusCancelled       OrderStatus = "Cancelled"
	OrderStatusReturnRequested OrderStatus = "Return Requested"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPlaced, OrderStatusShipped, OrderStatusDelivered,
		OrderStatusCancelled, OrderStatusReturnRequested:
		return true
	}
	return false
}

type OrderAction string

const (
	OrderActionEscalate OrderAction = "escalate"
	OrderActionCancel   OrderAction = "cancel"
	OrderActionReturn   OrderAction = "return"
)

// ParseOrderAction rejects anything outside the known action set.
func ParseOrderAction(raw string) (OrderAction, error) {
	switch a := OrderAction(raw); a {
	case OrderActionEscalate, OrderActionCancel, OrderActionReturn:
		return a, nil
	}
	return "", fmt.Errorf("unknown order action %q", raw)
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	ProductName     string             `bson:"productName" json:"productName"`
	Status          OrderStatus        `bson:"status" json:"status"`
	Price           float64            `bson:"price" json:"price"`
	Date            string             `bson:"date" json:"date"`
	DeliveryDate    *string            `bson:"deliveryDate" json:"deliveryDate"`
	ReturnRequested bool               `bson:"returnRequested" json:"returnRequested"`
	ReturnInfo      *ReturnInfo        `bson:"returnInfo,omitempty" json:"returnInfo,omitempty"`
}

type ReturnInfo struct {
	Status     string `bson:"status" json:"status"`
	PickupDate string `bson:"pickupDate" json:"pickupDate"`
	Courier    string `bson:"courier" json:"courier"`
}

// PickupRecord is what a courier hands back when a reverse pickup is booked.
type PickupRecord struct {
	Courier       string    `json:"courier"`
	ScheduledDate time.Time `json:"scheduledDate"`
	Status        string    `json:"status"`
	TrackingID    string    `json:"trackingId"`
}

func (p *PickupRecord) ReturnInfo() *ReturnInfo {
	return &ReturnInfo{
		Status:     p.Status,
		PickupDate: p.ScheduledDate.UTC().Format(DateLayout),
		Courier:    p.Courier,
	}
}

func (o *Order) OwnedBy(userID string) bool {
	return o.UserID.Hex() == userID
}
