package dto

import "route-optimizer-service/internal/domain"

type OptimizeRequest struct {
	Locations []domain.Coordinates `json:"locations"`
}

type OptimizeResponse struct {
	Route           []int   `json:"route"`
	TotalDistanceKm float64 `json:"total_distance_km"`
}

type RouteStopResponse struct {
	Index    int                `json:"index"`
	Location domain.Coordinates `json:"location"`
	Address  string             `json:"address"`
	OrderIDs []string           `json:"order_ids"`
}

type RoutePlanResponse struct {
	Partner         string              `json:"partner,omitempty"`
	Stops           []RouteStopResponse `json:"stops"`
	TotalDistanceKm float64             `json:"total_distance_km"`
	ETA             string              `json:"eta"`
}

type ListRoutePlansResponse struct {
	Plans []RoutePlanResponse `json:"plans"`
}

func NewRoutePlanResponse(p *domain.RoutePlan) RoutePlanResponse {
	stops := make([]RouteStopResponse, 0, len(p.Stops))
	for _, s := range p.Stops {
		ids := s.OrderIDs
		if ids == nil {
			ids = []string{}
		}
		stops = append(stops, RouteStopResponse{
			Index:    s.Index,
			Location: s.Location,
			Address:  s.Address,
			OrderIDs: ids,
		})
	}

	return RoutePlanResponse{
		Partner:         p.Partner,
		Stops:           stops,
		TotalDistanceKm: p.TotalDistanceKm,
		ETA:             p.ETA,
	}
}
