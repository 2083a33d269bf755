package handlers

import (
	"fmt"
	"net/http"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
)

// maxLocations bounds the matrix a single request may ask for.
const maxLocations = 500

type RouteHandler struct {
	Repo      ports.OrderRepository
	Optimizer ports.RouteOptimizer
	Partners  []string
}

// Optimize sequences a raw location list; index 0 is the depot.
func (h *RouteHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.OptimizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Locations) > maxLocations {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("at most %d locations are allowed", maxLocations))
		return
	}

	res, err := h.Optimizer.Optimize(r.Context(), req.Locations)
	if err != nil {
		writeServiceError(w, r, "optimize route", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.OptimizeResponse{
		Route:           res.Route,
		TotalDistanceKm: res.TotalDistanceKm,
	})
}

// Pending plans one route over every pending order.
func (h *RouteHandler) Pending(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	plan, err := services.PlanPendingRoute(r.Context(), h.Repo, h.Optimizer)
	if err != nil {
		writeServiceError(w, r, "plan pending route", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewRoutePlanResponse(plan))
}

// PartnerRoutes plans an independent route per delivery partner.
func (h *RouteHandler) PartnerRoutes(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	plans, err := services.PlanPartnerRoutes(r.Context(), h.Repo, h.Optimizer, h.Partners)
	if err != nil {
		writeServiceError(w, r, "plan partner routes", err)
		return
	}

	res := dto.ListRoutePlansResponse{Plans: make([]dto.RoutePlanResponse, 0, len(plans))}
	for _, p := range plans {
		res.Plans = append(res.Plans, dto.NewRoutePlanResponse(p))
	}
	writeJSON(w, r, http.StatusOK, res)
}
