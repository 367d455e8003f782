package handler

import (
	"net/http"

	"github.com/Amieurramy/updated-back-main/internal/models"
	"github.com/Amieurramy/updated-back-main/internal/service"

	"github.com/go-chi/chi/v5"
)

type ProfileHandler struct {
	svc *service.ProfileService
}

func NewProfileHandler(s *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: s}
}

// @Summary Agregar favorito
// @Tags profile
// @Security BearerAuth
// @Param itemId path string true "menuItemId (ObjectID)"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /me/favorites/{itemId} [post]
func (h *ProfileHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.AddFavorite(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "itemId")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Quitar favorito
// @Tags profile
// @Security BearerAuth
// @Param itemId path string true "menuItemId (ObjectID)"
// @Success 204
// @Router /me/favorites/{itemId} [delete]
func (h *ProfileHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveFavorite(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "itemId")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Guardar preferencias
// @Description Guarda el perfil alimentario y de salud; los platos que lo contradicen reciben un rating imputado de 0.5.
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.PreferencesRequest true "perfiles"
// @Success 200 {object} models.PreferencesResult
// @Failure 400 {object} map[string]string
// @Router /me/preferences [put]
func (h *ProfileHandler) PutPreferences(w http.ResponseWriter, r *http.Request) {
	var req models.PreferencesRequest
	if err := decodeAndValidate(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.SubmitPreferences(r.Context(), UserIDFromContext(r.Context()), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
