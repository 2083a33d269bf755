package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
	"route-optimizer-service/internal/ports"
)

var (
	ErrInvalidOrder = errors.New("invalid order")
	ErrInvalidCSV   = errors.New("invalid csv")
)

// UnresolvedAddressError reports an address the geocoder could not resolve.
type UnresolvedAddressError struct {
	Address string
	Err     error
}

func (e *UnresolvedAddressError) Error() string {
	return fmt.Sprintf("unresolved address %q: %v", e.Address, e.Err)
}

func (e *UnresolvedAddressError) Unwrap() error { return e.Err }

// Input for creating a single order. Coordinates are optional; missing
// ones are resolved with the geocoder.
type CreateOrderInput struct {
	PickupAddress   string
	DeliveryAddress string
	Pickup          *domain.Coordinates
	Drop            *domain.Coordinates
}

// Orders persists new orders, resolving addresses on the way in.
type Orders struct {
	Repo     ports.OrderRepository
	Geocoder ports.Geocoder
}

// CreateOrder validates the input, geocodes missing coordinates and stores
// a pending, unassigned order with its ETA.
func (s *Orders) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	pickupAddr := strings.TrimSpace(in.PickupAddress)
	dropAddr := strings.TrimSpace(in.DeliveryAddress)
	if pickupAddr == "" || dropAddr == "" {
		return nil, fmt.Errorf("create order: %w: pickup and delivery addresses are required", ErrInvalidOrder)
	}

	pickup, err := s.resolve(ctx, pickupAddr, in.Pickup)
	if err != nil {
		return nil, fmt.Errorf("create order: pickup: %w", err)
	}
	drop, err := s.resolve(ctx, dropAddr, in.Drop)
	if err != nil {
		return nil, fmt.Errorf("create order: delivery: %w", err)
	}

	o := domain.NewOrder(pickupAddr, dropAddr, pickup, drop)
	o.ETA = domain.EstimateDelivery(geo.Haversine(pickup, drop))

	if err := s.Repo.SaveOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: save: %w", err)
	}
	return o, nil
}

func (s *Orders) resolve(ctx context.Context, address string, given *domain.Coordinates) (domain.Coordinates, error) {
	if given != nil {
		if err := given.Validate(); err != nil {
			return domain.Coordinates{}, err
		}
		return *given, nil
	}
	if s.Geocoder == nil {
		return domain.Coordinates{}, fmt.Errorf("%w: coordinates required for %q", ErrInvalidOrder, address)
	}
	c, err := s.Geocoder.Geocode(ctx, address)
	if err != nil {
		if ctx.Err() != nil {
			return domain.Coordinates{}, err
		}
		return domain.Coordinates{}, &UnresolvedAddressError{Address: address, Err: err}
	}
	return c, nil
}

// Outcome of a bulk CSV import.
type ImportResult struct {
	Created         []*domain.Order
	FailedAddresses []string
}

// ImportOrdersCSV creates one order per row. Required columns are
// pickupaddress and deliveryaddress; lat_pick, lon_pick, lat_drop and
// lon_drop are optional and skip geocoding when both halves of a pair are
// present. Rows whose addresses cannot be resolved are skipped and reported.
func (s *Orders) ImportOrdersCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("import orders: %w: empty file", ErrInvalidCSV)
	}
	if err != nil {
		return nil, fmt.Errorf("import orders: %w: %v", ErrInvalidCSV, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"pickupaddress", "deliveryaddress"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("import orders: %w: missing column %q", ErrInvalidCSV, required)
		}
	}

	res := &ImportResult{}
	failed := map[string]bool{}
	fail := func(addr string) {
		if addr != "" && !failed[addr] {
			failed[addr] = true
			res.FailedAddresses = append(res.FailedAddresses, addr)
		}
	}

	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return res, fmt.Errorf("import orders: %w: line %d: %v", ErrInvalidCSV, line, err)
		}
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("import orders: %w", err)
		}

		in := CreateOrderInput{
			PickupAddress:   field(rec, cols, "pickupaddress"),
			DeliveryAddress: field(rec, cols, "deliveryaddress"),
			Pickup:          pair(rec, cols, "lat_pick", "lon_pick"),
			Drop:            pair(rec, cols, "lat_drop", "lon_drop"),
		}

		o, err := s.CreateOrder(ctx, in)
		if err != nil {
			var ua *UnresolvedAddressError
			var ic *domain.InvalidCoordinateError
			switch {
			case errors.As(err, &ua):
				fail(ua.Address)
			case errors.Is(err, ErrInvalidOrder), errors.As(err, &ic):
				log.Printf("import orders: skipped line=%d err=%v", line, err)
			default:
				return res, fmt.Errorf("import orders: line %d: %w", line, err)
			}
			continue
		}
		res.Created = append(res.Created, o)
	}

	return res, nil
}

func field(rec []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func pair(rec []string, cols map[string]int, latCol, lonCol string) *domain.Coordinates {
	latS, lonS := field(rec, cols, latCol), field(rec, cols, lonCol)
	if latS == "" || lonS == "" {
		return nil
	}
	lat, err1 := strconv.ParseFloat(latS, 64)
	lon, err2 := strconv.ParseFloat(lonS, 64)
	if err1 != nil || err2 != nil {
		return nil
	}
	return &domain.Coordinates{Lat: lat, Lon: lon}
}
