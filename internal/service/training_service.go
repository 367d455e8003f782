package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/Amieurramy/updated-back-main/internal/cluster"
	"github.com/Amieurramy/updated-back-main/internal/metrics"
	"github.com/Amieurramy/updated-back-main/internal/models"
	"github.com/Amieurramy/updated-back-main/internal/recsys"

	"github.com/rs/zerolog"
)

var ErrRunInProgress = errors.New("a training run is already in progress")

// RunStore guarda el historial de corridas (training_runs).
type RunStore interface {
	Insert(ctx context.Context, rep *recsys.Report) error
	List(ctx context.Context, limit int64) ([]recsys.Report, error)
	Last(ctx context.Context) (*recsys.Report, error)
}

// Dispatcher envía una tarea a un nodo remoto (cluster.SendTask en producción).
type Dispatcher func(ctx context.Context, addr string, task *cluster.TrainTask, onEpoch func(recsys.EpochStats)) (*cluster.TrainResponse, error)

// TrainingService serializa las corridas del pipeline y registra su resultado.
type TrainingService struct {
	mu sync.Mutex

	source recsys.Source
	sink   recsys.Sink
	base   recsys.Config

	// runs puede ser nil (nodo remoto: el coordinador guarda la corrida).
	runs RunStore

	nodes    []string
	dispatch Dispatcher
	timeout  time.Duration

	logger zerolog.Logger
}

//nolint:gocritic // zerolog.Logger por valor
func NewTrainingService(
	src recsys.Source,
	sink recsys.Sink,
	base recsys.Config,
	runs RunStore,
	nodes []string,
	logger zerolog.Logger,
) *TrainingService {
	return &TrainingService{
		source:   src,
		sink:     sink,
		base:     base,
		runs:     runs,
		nodes:    nodes,
		dispatch: cluster.SendTask,
		timeout:  30 * time.Minute,
		logger:   logger,
	}
}

func (s *TrainingService) BaseConfig() recsys.Config { return s.base }

// Train ejecuta una corrida con los overrides de req sobre la config base.
// Con nodos configurados la corrida se delega al primero que responda; si ninguno
// la toma se entrena en este proceso. Un nodo ocupado devuelve ErrRunInProgress. Las corridas no se solapan: si ya hay una
// activa devuelve ErrRunInProgress.
func (s *TrainingService) Train(ctx context.Context, req *models.TrainRequest, onEpoch func(recsys.EpochStats)) (*recsys.Report, error) {
	return s.TrainConfig(ctx, req.Apply(s.base), onEpoch)
}

// TrainConfig es Train con la configuración ya resuelta (la que llega en una
// tarea remota).
func (s *TrainingService) TrainConfig(ctx context.Context, cfg recsys.Config, onEpoch func(recsys.EpochStats)) (*recsys.Report, error) {
	if !s.mu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer s.mu.Unlock()

	rep, err := s.runRemote(ctx, cfg, onEpoch)
	if errors.Is(err, errNoRemote) {
		rep, err = s.runLocal(ctx, cfg, onEpoch)
	}
	if rep == nil {
		return nil, err
	}

	s.record(ctx, rep)
	return rep, err
}

func (s *TrainingService) runLocal(ctx context.Context, cfg recsys.Config, onEpoch func(recsys.EpochStats)) (*recsys.Report, error) {
	p := recsys.NewPipeline(s.source, s.sink, cfg, s.logger)
	p.OnEpoch = func(st recsys.EpochStats) {
		s.logger.Debug().
			Int("epoch", st.Epoch).
			Str("loss", recsys.Loss(st.Loss).String()).
			Str("val_loss", recsys.Loss(st.ValLoss).String()).
			Msg("epoch")
		if onEpoch != nil {
			onEpoch(st)
		}
	}
	return p.Run(ctx)
}

// errNoRemote: ningún nodo tomó la tarea y se puede entrenar localmente.
var errNoRemote = errors.New("no training node took the task")

// runRemote devuelve errNoRemote solo si ningún nodo empezó a entrenar. Un nodo
// ocupado o uno que ya mandó épocas y después falló cortan la búsqueda: otra
// corrida puede seguir escribiendo parámetros.
func (s *TrainingService) runRemote(ctx context.Context, cfg recsys.Config, onEpoch func(recsys.EpochStats)) (*recsys.Report, error) {
	if len(s.nodes) == 0 {
		return nil, errNoRemote
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	task := &cluster.TrainTask{Config: cfg}
	for _, addr := range s.nodes {
		started := false
		resp, err := s.dispatch(ctx, addr, task, func(st recsys.EpochStats) {
			started = true
			if onEpoch != nil {
				onEpoch(st)
			}
		})
		if err != nil {
			if !errors.Is(err, cluster.ErrUnreachable) && (started || timedOut(err)) {
				s.logger.Error().Err(err).Str("node", addr).Msg("nodo cayó a mitad de la corrida")
				return nil, fmt.Errorf("node %s: %w", addr, err)
			}
			s.logger.Warn().Err(err).Str("node", addr).Msg("nodo de entrenamiento no disponible")
			continue
		}
		if resp.Busy {
			s.logger.Warn().Str("node", addr).Msg("nodo ocupado con otra corrida")
			return nil, fmt.Errorf("node %s: %w", addr, ErrRunInProgress)
		}
		if resp.Report == nil {
			if started {
				return nil, fmt.Errorf("node %s: %s", addr, resp.Error)
			}
			s.logger.Warn().Str("node", addr).Str("error", resp.Error).Msg("nodo respondió sin reporte")
			continue
		}
		s.logger.Info().Str("node", addr).Str("run_id", resp.Report.RunID).Msg("corrida remota terminada")
		return resp.Report, cluster.ErrorFromReport(resp)
	}

	s.logger.Warn().Int("nodes", len(s.nodes)).Msg("ningún nodo respondió, entrenando localmente")
	return nil, errNoRemote
}

// timedOut: el nodo pudo haber tomado la tarea y seguir entrenando.
func timedOut(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func (s *TrainingService) record(ctx context.Context, rep *recsys.Report) {
	metrics.RecordTrainingRun(metrics.RunSummary{
		Status:          string(rep.Status),
		Duration:        time.Duration(rep.DurationMS) * time.Millisecond,
		Epochs:          rep.Epochs,
		Loss:            float64(rep.FinalLoss),
		ValLoss:         float64(rep.FinalValLoss),
		LossValid:       rep.FinalLoss.Valid(),
		ValLossValid:    rep.FinalValLoss.Valid(),
		Dropped:         rep.Dropped,
		PersistFailures: rep.PersistFailures,
	})

	if s.runs == nil {
		return
	}
	if err := s.runs.Insert(ctx, rep); err != nil {
		s.logger.Error().Err(err).Str("run_id", rep.RunID).Msg("no se pudo guardar la corrida")
	}
}

func (s *TrainingService) ListRuns(ctx context.Context, limit int64) ([]recsys.Report, error) {
	if s.runs == nil {
		return []recsys.Report{}, nil
	}
	runs, err := s.runs.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list training runs: %w", err)
	}
	return runs, nil
}

func (s *TrainingService) LastRun(ctx context.Context) (*recsys.Report, error) {
	if s.runs == nil {
		return nil, nil
	}
	return s.runs.Last(ctx)
}
