package handlers

import (
	"io"
	"net/http"
	"strings"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/services"
)

const maxImportBytes = 10 << 20

// OrderHandler exposes order intake, assignment and status endpoints.
type OrderHandler struct {
	Orders   *services.Orders
	Partners []string
}

func (h *OrderHandler) Collection(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet, http.MethodPost, http.MethodDelete) {
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	case http.MethodDelete:
		if err := h.Orders.Repo.ClearOrders(r.Context()); err != nil {
			writeServiceError(w, r, "clear orders", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *OrderHandler) list(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.Repo.ListOrders(r.Context())
	if err != nil {
		writeServiceError(w, r, "list orders", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListOrdersResponse{Orders: dto.NewOrderResponses(orders)})
}

func (h *OrderHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	o, err := h.Orders.CreateOrder(r.Context(), services.CreateOrderInput{
		PickupAddress:   req.PickupAddress,
		DeliveryAddress: req.DeliveryAddress,
		Pickup:          req.Pickup,
		Drop:            req.Drop,
	})
	if err != nil {
		writeServiceError(w, r, "create order", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.NewOrderResponse(o))
}

// Import accepts a CSV either as the raw request body or as the "file"
// field of a multipart form.
func (h *OrderHandler) Import(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	defer r.Body.Close()

	var src io.Reader = r.Body
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		f, _, err := r.FormFile("file")
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "multipart form must contain a file field")
			return
		}
		defer f.Close()
		src = f
	}

	res, err := h.Orders.ImportOrdersCSV(r.Context(), src)
	if err != nil {
		writeServiceError(w, r, "import orders", err)
		return
	}

	failed := res.FailedAddresses
	if failed == nil {
		failed = []string{}
	}
	writeJSON(w, r, http.StatusOK, dto.ImportOrdersResponse{
		Created:         len(res.Created),
		Orders:          dto.NewOrderResponses(res.Created),
		FailedAddresses: failed,
	})
}

func (h *OrderHandler) AutoAssign(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	n, err := services.AutoAssign(r.Context(), h.Orders.Repo, h.Partners)
	if err != nil {
		writeServiceError(w, r, "auto assign", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.AutoAssignResponse{Assigned: n})
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPut) {
		return
	}

	var req dto.UpdateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id := r.PathValue("id")
	if _, err := services.UpdateStatus(r.Context(), h.Orders.Repo, id, req.Status); err != nil {
		writeServiceError(w, r, "update status", err)
		return
	}
	h.writeOrder(w, r, id)
}

func (h *OrderHandler) Assign(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPut) {
		return
	}

	var req dto.AssignRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id := r.PathValue("id")
	partner := strings.TrimSpace(req.Partner)
	if err := services.AssignOrder(r.Context(), h.Orders.Repo, h.Partners, id, partner); err != nil {
		writeServiceError(w, r, "assign order", err)
		return
	}
	h.writeOrder(w, r, id)
}

func (h *OrderHandler) Share(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	o, err := h.Orders.Repo.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "share order", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ShareResponse{OrderID: o.ID, Message: services.ShareMessage(o)})
}

func (h *OrderHandler) writeOrder(w http.ResponseWriter, r *http.Request, id string) {
	o, err := h.Orders.Repo.GetOrder(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "get order", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewOrderResponse(o))
}
