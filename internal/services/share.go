package services

import (
	"fmt"

	"route-optimizer-service/internal/domain"
)

// ShareMessage renders the text a partner sends to the receiver of an order.
func ShareMessage(o *domain.Order) string {
	return fmt.Sprintf(
		"Your order from %s is on its way! It will be delivered to %s in approximately %s by our delivery partner, %s.",
		o.PickupAddress, o.DeliveryAddress, o.ETA, o.AssignedTo,
	)
}
