package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusPickedUp  OrderStatus = "Picked Up"
	StatusDelivered OrderStatus = "Delivered"
)

// Unassigned is the AssignedTo value of an order with no delivery partner.
const Unassigned = "N/A"

var ErrInvalidStatus = errors.New("invalid order status")

// ParseStatus accepts the status names case-insensitively.
func ParseStatus(s string) (OrderStatus, error) {
	s = strings.TrimSpace(s)
	for _, st := range []OrderStatus{StatusPending, StatusPickedUp, StatusDelivered} {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Represents a single shipment handled by the system.
// An Order moves from a pickup address to a delivery address; both are
// resolved to coordinates before the order is stored.
type Order struct {
	ID              string
	PickupAddress   string
	DeliveryAddress string
	AssignedTo      string
	Status          OrderStatus
	Pickup          Coordinates
	Drop            Coordinates
	ETA             string
}

// NewOrder creates a pending, unassigned order with a fresh ID.
func NewOrder(pickupAddress, deliveryAddress string, pickup, drop Coordinates) *Order {
	return &Order{
		ID:              uuid.NewString(),
		PickupAddress:   pickupAddress,
		DeliveryAddress: deliveryAddress,
		AssignedTo:      Unassigned,
		Status:          StatusPending,
		Pickup:          pickup,
		Drop:            drop,
		ETA:             Unassigned,
	}
}

func (o *Order) IsPending() bool { return o.Status == StatusPending }

func (o *Order) IsAssigned() bool {
	return o.AssignedTo != "" && o.AssignedTo != Unassigned
}
