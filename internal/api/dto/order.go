package dto

import "route-optimizer-service/internal/domain"

type CreateOrderRequest struct {
	PickupAddress   string              `json:"pickup_address"`
	DeliveryAddress string              `json:"delivery_address"`
	Pickup          *domain.Coordinates `json:"pickup,omitempty"`
	Drop            *domain.Coordinates `json:"drop,omitempty"`
}

type OrderResponse struct {
	ID              string             `json:"id"`
	PickupAddress   string             `json:"pickup_address"`
	DeliveryAddress string             `json:"delivery_address"`
	AssignedTo      string             `json:"assigned_to"`
	Status          string             `json:"status"`
	Pickup          domain.Coordinates `json:"pickup"`
	Drop            domain.Coordinates `json:"drop"`
	ETA             string             `json:"eta"`
}

type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}

type ImportOrdersResponse struct {
	Created         int             `json:"created"`
	Orders          []OrderResponse `json:"orders"`
	FailedAddresses []string        `json:"failed_addresses"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type AssignRequest struct {
	Partner string `json:"partner"`
}

type AutoAssignResponse struct {
	Assigned int `json:"assigned"`
}

type ShareResponse struct {
	OrderID string `json:"order_id"`
	Message string `json:"message"`
}

func NewOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		ID:              o.ID,
		PickupAddress:   o.PickupAddress,
		DeliveryAddress: o.DeliveryAddress,
		AssignedTo:      o.AssignedTo,
		Status:          string(o.Status),
		Pickup:          o.Pickup,
		Drop:            o.Drop,
		ETA:             o.ETA,
	}
}

func NewOrderResponses(orders []*domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return out
}
