package handler

import (
	"net/http"
	"strconv"

	"github.com/Amieurramy/updated-back-main/internal/models"
	"github.com/Amieurramy/updated-back-main/internal/service"
)

type RatingHandler struct {
	svc *service.RatingService
}

func NewRatingHandler(s *service.RatingService) *RatingHandler {
	return &RatingHandler{svc: s}
}

// @Summary Mis ratings
// @Tags ratings
// @Security BearerAuth
// @Produce json
// @Param limit query int false "default 50"
// @Param offset query int false "default 0"
// @Success 200 {array} models.RatingDoc
// @Router /me/ratings [get]
func (h *RatingHandler) GetMyRatings(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	offset, _ := strconv.ParseInt(r.URL.Query().Get("offset"), 10, 64)
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	ratings, err := h.svc.GetByUser(r.Context(), UserIDFromContext(r.Context()), limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ratings)
}

// @Summary Puntuar un plato
// @Description Crea o actualiza el rating explícito (0–5) del usuario sobre un plato.
// @Tags ratings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.RatingRequest true "rating"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /me/ratings [post]
func (h *RatingHandler) PostMyRating(w http.ResponseWriter, r *http.Request) {
	var req models.RatingRequest
	if err := decodeAndValidate(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.AddOrUpdate(r.Context(), UserIDFromContext(r.Context()), req); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
