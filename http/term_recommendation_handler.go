package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"loan-engine/domain"
	"loan-engine/service"
)

type TermRecommendationHandler struct {
	service *service.TermRecommendationService
	log     zerolog.Logger
}

func NewTermRecommendationHandler(service *service.TermRecommendationService, log zerolog.Logger) *TermRecommendationHandler {
	return &TermRecommendationHandler{
		service: service,
		log:     log.With().Str("handler", "term_recommendation").Logger(),
	}
}

func (h *TermRecommendationHandler) RecommendTerm(w http.ResponseWriter, r *http.Request) {
	var input domain.TermRecommendationInput
	if status, err := decodeJSON(w, r, &input); err != nil {
		h.log.Debug().Err(err).Msg("rejected request body")
		writeError(w, h.log, status, err.Error())
		return
	}

	result, err := h.service.RecommendTerm(r.Context(), input)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, h.log, http.StatusOK, result)
}
