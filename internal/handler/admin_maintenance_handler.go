package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Amieurramy/updated-back-main/internal/logging"
	"github.com/Amieurramy/updated-back-main/internal/models"
	"github.com/Amieurramy/updated-back-main/internal/recsys"
	"github.com/Amieurramy/updated-back-main/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// Trainer es lo que el handler necesita del TrainingService.
type Trainer interface {
	Train(ctx context.Context, req *models.TrainRequest, onEpoch func(recsys.EpochStats)) (*recsys.Report, error)
	ListRuns(ctx context.Context, limit int64) ([]recsys.Report, error)
}

// SummaryProvider arma el resumen de cobertura del modelo.
type SummaryProvider interface {
	Summary(ctx context.Context) (*models.AdminRecommenderSummary, error)
}

// AdminMaintenanceHandler expone el entrenamiento y su estado.
type AdminMaintenanceHandler struct {
	trainer Trainer
	summary SummaryProvider
}

// NewAdminMaintenanceHandler crea el handler.
func NewAdminMaintenanceHandler(trainer Trainer, summary SummaryProvider) *AdminMaintenanceHandler {
	return &AdminMaintenanceHandler{trainer: trainer, summary: summary}
}

// trainStatus: completed y los no-op responden 200; el resto lleva el reporte con el código de error.
func trainStatus(err error) int {
	switch {
	case err == nil, recsys.IsNoop(err):
		return http.StatusOK
	case errors.Is(err, recsys.ErrDiverged):
		return http.StatusUnprocessableEntity
	default:
		return statusFor(err)
	}
}

// @Summary Entrenar el recomendador
// @Description Ejecuta una corrida completa (factorización + listas top-N). El body es opcional y sobreescribe hiperparámetros.
// @Tags admin-recommendations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.TrainRequest false "overrides"
// @Success 200 {object} recsys.Report
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string "ya hay una corrida activa"
// @Failure 422 {object} recsys.Report "pérdida no finita"
// @Router /admin/recommendations/train [post]
func (h *AdminMaintenanceHandler) Train(w http.ResponseWriter, r *http.Request) {
	var req models.TrainRequest
	if err := decodeAndValidate(r, &req, true); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rep, err := h.trainer.Train(r.Context(), &req, nil)
	if rep == nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, trainStatus(err), rep)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsMessage struct {
	Type    string         `json:"type"`
	Msg     string         `json:"msg,omitempty"`
	Epoch   int            `json:"epoch,omitempty"`
	Loss    *recsys.Loss   `json:"loss,omitempty"`
	ValLoss *recsys.Loss   `json:"valLoss,omitempty"`
	Report  *recsys.Report `json:"report,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// @Summary Entrenar con progreso en tiempo real (WebSocket)
// @Description Abre un WebSocket, lanza una corrida y emite un mensaje "epoch" por época y un "result" final. Acepta los overrides como query params (topN, maxEpochs, embeddingDim, learningRate).
// @Tags admin-recommendations
// @Security BearerAuth
// @Param access_token query string false "JWT si el cliente no puede mandar headers"
// @Success 101
// @Router /admin/recommendations/train/ws [get]
func (h *AdminMaintenanceHandler) TrainWS(w http.ResponseWriter, r *http.Request) {
	req, err := trainRequestFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade ya respondió al cliente
		return
	}
	defer conn.Close()

	log := logging.Component("ws")
	send := func(m wsMessage) {
		_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(m); err != nil {
			log.Debug().Err(err).Msg("ws write")
		}
	}

	send(wsMessage{Type: "start", Msg: "corrida de entrenamiento iniciada"})

	rep, err := h.trainer.Train(r.Context(), req, func(st recsys.EpochStats) {
		loss, val := recsys.Loss(st.Loss), recsys.Loss(st.ValLoss)
		send(wsMessage{Type: "epoch", Epoch: st.Epoch, Loss: &loss, ValLoss: &val})
	})

	msg := wsMessage{Type: "result", Report: rep}
	if err != nil && !recsys.IsNoop(err) {
		msg.Type = "error"
		msg.Error = err.Error()
	}
	send(msg)
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func trainRequestFromQuery(r *http.Request) (*models.TrainRequest, error) {
	q := r.URL.Query()
	req := &models.TrainRequest{}

	intParam := func(name string, dst **int) error {
		if v := q.Get(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return errors.New(name + ": not an integer")
			}
			*dst = &n
		}
		return nil
	}
	if err := intParam("topN", &req.TopN); err != nil {
		return nil, err
	}
	if err := intParam("maxEpochs", &req.MaxEpochs); err != nil {
		return nil, err
	}
	if err := intParam("embeddingDim", &req.EmbeddingDim); err != nil {
		return nil, err
	}
	if v := q.Get("learningRate"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.New("learningRate: not a number")
		}
		req.LearningRate = &f
	}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	return req, nil
}

// @Summary Historial de corridas
// @Tags admin-recommendations
// @Security BearerAuth
// @Produce json
// @Param limit query int false "máximo de corridas (default 20)"
// @Success 200 {object} models.TrainingRunsPage
// @Router /admin/recommendations/runs [get]
func (h *AdminMaintenanceHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := int64(20)
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	runs, err := h.trainer.ListRuns(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.TrainingRunsPage{Runs: runs, Limit: limit})
}

// @Summary Resumen del recomendador
// @Description Usuarios y platos con/sin parámetros entrenados, ratings por procedencia y última corrida.
// @Tags admin-recommendations
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.AdminRecommenderSummary
// @Router /admin/recommendations/summary [get]
func (h *AdminMaintenanceHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.summary.Summary(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// MountAdminMaintenanceRoutes monta las rutas bajo /admin/recommendations.
// Se espera que r ya tenga JWTAuth y AdminOnly.
func MountAdminMaintenanceRoutes(r chi.Router, h *AdminMaintenanceHandler) {
	r.Route("/admin/recommendations", func(r chi.Router) {
		r.Post("/train", h.Train)
		r.Get("/train/ws", h.TrainWS)
		r.Get("/runs", h.ListRuns)
		r.Get("/summary", h.GetSummary)
	})
}

var _ Trainer = (*service.TrainingService)(nil)
