package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"loan-engine/domain"
	"loan-engine/service"
)

type SimulationHandler struct {
	service *service.SimulationService
	log     zerolog.Logger
}

func NewSimulationHandler(service *service.SimulationService, log zerolog.Logger) *SimulationHandler {
	return &SimulationHandler{
		service: service,
		log:     log.With().Str("handler", "simulation").Logger(),
	}
}

// Simulate runs a full simulation and returns the stored record.
func (h *SimulationHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req domain.SimulationRequest
	if status, err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.log, status, err.Error())
		return
	}

	record, err := h.service.Simulate(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, h.log, http.StatusCreated, record)
}

func (h *SimulationHandler) GetSimulation(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, record)
}

func (h *SimulationHandler) AssessRisk(w http.ResponseWriter, r *http.Request) {
	var req domain.RiskRequest
	if status, err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.log, status, err.Error())
		return
	}

	risk, err := h.service.AssessRisk(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, h.log, http.StatusOK, risk)
}
