package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Amieurramy/updated-back-main/internal/models"

	"github.com/go-chi/chi/v5"
)

type Recommender interface {
	ForUser(ctx context.Context, userHex string, refresh bool) (*models.UserRecommendations, error)
	History(ctx context.Context, userHex string, limit int64) ([]models.Recommendation, error)
}

type RecommendHandler struct {
	svc Recommender
}

func NewRecommendHandler(s Recommender) *RecommendHandler {
	return &RecommendHandler{svc: s}
}

// @Summary Mis recomendaciones
// @Description Platos recomendados por la última corrida de entrenamiento.
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {object} models.UserRecommendations
// @Router /me/recommendations [get]
func (h *RecommendHandler) GetMyRecommendations(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, UserIDFromContext(r.Context()))
}

// @Summary Recomendaciones de un usuario (ADMIN)
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Param id path string true "userId (ObjectID)"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {object} models.UserRecommendations
// @Failure 404 {object} map[string]string
// @Router /users/{id}/recommendations [get]
func (h *RecommendHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, chi.URLParam(r, "id"))
}

func (h *RecommendHandler) serve(w http.ResponseWriter, r *http.Request, userID string) {
	refresh := r.URL.Query().Get("refresh") == "true"
	recs, err := h.svc.ForUser(r.Context(), userID, refresh)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// @Summary Historial de recomendaciones de un usuario (ADMIN)
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Param id path string true "userId (ObjectID)"
// @Param limit query int false "default 10"
// @Success 200 {array} models.Recommendation
// @Router /users/{id}/recommendations/history [get]
func (h *RecommendHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	hist, err := h.svc.History(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hist)
}
