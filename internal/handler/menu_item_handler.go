package handler

import (
	"net/http"
	"strconv"

	"github.com/Amieurramy/updated-back-main/internal/models"
	"github.com/Amieurramy/updated-back-main/internal/service"

	"github.com/go-chi/chi/v5"
)

type MenuItemHandler struct {
	svc *service.MenuItemService
}

func NewMenuItemHandler(s *service.MenuItemService) *MenuItemHandler {
	return &MenuItemHandler{svc: s}
}

// @Summary Listar platos
// @Tags menu
// @Produce json
// @Param category query string false "categoría"
// @Param available query bool false "solo disponibles"
// @Param limit query int false "default 50, máx 200"
// @Param offset query int false "default 0"
// @Success 200 {array} models.MenuItemDoc
// @Router /menu-items [get]
func (h *MenuItemHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)
	offset, _ := strconv.ParseInt(q.Get("offset"), 10, 64)
	if offset < 0 {
		offset = 0
	}

	items, err := h.svc.List(r.Context(), models.MenuItemFilter{
		Category:      q.Get("category"),
		AvailableOnly: q.Get("available") == "true",
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// @Summary Obtener plato
// @Tags menu
// @Produce json
// @Param id path string true "menuItemId (ObjectID)"
// @Success 200 {object} models.MenuItemDoc
// @Failure 404 {object} map[string]string
// @Router /menu-items/{id} [get]
func (h *MenuItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
