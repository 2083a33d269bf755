package domain

import "fmt"

// Delivery partner aggregate holding the orders assigned to it.
type Partner struct {
	Name   string
	Orders []*Order
}

func NewPartner(name string) *Partner {
	return &Partner{Name: name}
}

// Assign a single order to the partner.
func (p *Partner) Assign(o *Order) error {
	if o == nil {
		return fmt.Errorf("assign order: partner %q: order is nil", p.Name)
	}
	if o.IsAssigned() && o.AssignedTo != p.Name {
		return fmt.Errorf("assign order: order %s already assigned to %q", o.ID, o.AssignedTo)
	}
	o.AssignedTo = p.Name
	p.Orders = append(p.Orders, o)
	return nil
}

// PendingOrders returns the assigned orders that still need a route.
func (p *Partner) PendingOrders() []*Order {
	out := make([]*Order, 0, len(p.Orders))
	for _, o := range p.Orders {
		if o.IsPending() {
			out = append(out, o)
		}
	}
	return out
}

// Unassign all orders from the partner.
func (p *Partner) Clear() {
	for _, o := range p.Orders {
		o.AssignedTo = Unassigned
	}
	p.Orders = nil
}
