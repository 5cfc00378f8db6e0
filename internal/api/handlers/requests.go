package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartewaste/ewaste-backend/internal/api/httpx"
	"github.com/smartewaste/ewaste-backend/internal/metrics"
	"github.com/smartewaste/ewaste-backend/internal/middleware"
	"github.com/smartewaste/ewaste-backend/internal/models"
	"github.com/smartewaste/ewaste-backend/internal/services"
)

type RequestHandler struct {
	Requests *services.RequestService
}

func NewRequestHandler(requests *services.RequestService) *RequestHandler {
	return &RequestHandler{Requests: requests}
}

func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())
	reqs, err := h.Requests.List(r.Context(), actor)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	if reqs == nil {
		reqs = []models.PickupRequest{}
	}
	httpx.WriteJSON(w, http.StatusOK, reqs)
}

func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())
	var in services.CreateRequestInput
	if err := decode(r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	req, err := h.Requests.Create(r.Context(), actor, in)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	metrics.RequestsCreated.Inc()
	httpx.WriteJSON(w, http.StatusCreated, req)
}

func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())
	req, err := h.Requests.Get(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, req)
}

func (h *RequestHandler) Patch(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())
	var in services.EditRequestInput
	if err := decode(r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	req, err := h.Requests.Edit(r.Context(), actor, chi.URLParam(r, "id"), in)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, req)
}

func (h *RequestHandler) Assign(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())
	var in struct {
		CollectorID string `json:"collector_id"`
	}
	if err := decode(r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	req, err := h.Requests.Assign(r.Context(), actor, chi.URLParam(r, "id"), in.CollectorID)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, req)
}

func (h *RequestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())
	var in struct {
		Status string `json:"status"`
	}
	if err := decode(r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	req, err := h.Requests.UpdateStatus(r.Context(), actor, chi.URLParam(r, "id"), in.Status)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, req)
}
