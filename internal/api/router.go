package api

import (
	"net/http"

	"route-optimizer-service/internal/api/handlers"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
)

type Deps struct {
	Repo      ports.OrderRepository
	Geocoder  ports.Geocoder
	Optimizer ports.RouteOptimizer
	Partners  []string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	orderHandler := &handlers.OrderHandler{
		Orders:   &services.Orders{Repo: d.Repo, Geocoder: d.Geocoder},
		Partners: d.Partners,
	}
	routeHandler := &handlers.RouteHandler{
		Repo:      d.Repo,
		Optimizer: d.Optimizer,
		Partners:  d.Partners,
	}

	mux.HandleFunc("/health", handlers.Health)

	mux.HandleFunc("/orders", orderHandler.Collection)
	mux.HandleFunc("/orders/import", orderHandler.Import)
	mux.HandleFunc("/orders/auto-assign", orderHandler.AutoAssign)
	mux.HandleFunc("/orders/{id}/status", orderHandler.UpdateStatus)
	mux.HandleFunc("/orders/{id}/assignee", orderHandler.Assign)
	mux.HandleFunc("/orders/{id}/share", orderHandler.Share)

	mux.HandleFunc("/routes/optimize", routeHandler.Optimize)
	mux.HandleFunc("/routes/pending", routeHandler.Pending)
	mux.HandleFunc("/routes/partners", routeHandler.PartnerRoutes)

	return requestIDMiddleware(loggingMiddleware(mux))
}
