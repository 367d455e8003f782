package recsys

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Source es el almacén de interacciones (solo lectura).
type Source interface {
	// Observations devuelve un snapshot de todos los ratings con sus referencias resueltas.
	Observations(ctx context.Context) ([]Observation, error)

	// Favorites devuelve los favoritos por usuario.
	Favorites(ctx context.Context) (map[string][]string, error)

	// Items devuelve el universo de ítems conocidos, en orden de catálogo.
	Items(ctx context.Context) ([]string, error)
}

// UserParams son los parámetros persistidos de un usuario.
type UserParams struct {
	Embedding []float64
	Bias      float64
	TrainedAt time.Time
}

// ItemParams son los parámetros persistidos de un ítem.
type ItemParams struct {
	Embedding []float64
	Bias      float64
}

// Sink recibe los parámetros y listas de una corrida. Cada escritura reemplaza por
// completo el valor anterior de esa entidad.
type Sink interface {
	SaveUserParams(ctx context.Context, userID string, p UserParams) error
	SaveItemParams(ctx context.Context, itemID string, p ItemParams) error
	SaveRecommendations(ctx context.Context, userID, runID string, recs []Scored) error
}

// Pipeline ejecuta una corrida completa: índices → centrado → entrenamiento →
// recomendaciones → persistencia, en etapas estrictamente secuenciales.
type Pipeline struct {
	source Source
	sink   Sink
	config Config
	logger zerolog.Logger

	// OnEpoch se llama al final de cada época (opcional).
	OnEpoch func(EpochStats)

	now func() time.Time
}

// NewPipeline crea un pipeline. Los campos en cero de cfg toman DefaultConfig, salvo
// Regularization, ValidationSplit, MinDelta y MinObservations, donde 0 es un valor
// válido: Config{} entrena sin L2, sin validación y sin umbral mínimo de ratings.
//
//nolint:gocritic // zerolog.Logger se pasa por valor
func NewPipeline(src Source, sink Sink, cfg Config, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		source: src,
		sink:   sink,
		config: cfg.withDefaults(),
		logger: logger.With().Str("component", "recsys").Logger(),
		now:    time.Now,
	}
}

func (p *Pipeline) Config() Config { return p.config }

// Run ejecuta la corrida. Para los abortos "nada que hacer" devuelve el reporte junto
// con ErrInsufficientData o ErrEmptyMapping (ver IsNoop). Los fallos de escritura por
// entidad no abortan: quedan en Report.PersistFailures.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	cfg := p.config
	rep := &Report{
		RunID:        uuid.NewString(),
		Config:       cfg,
		FinalLoss:    Loss(math.NaN()),
		FinalValLoss: Loss(math.NaN()),
		StartedAt:    p.now(),
	}
	log := p.logger.With().Str("run_id", rep.RunID).Logger()
	log.Info().Msg("training run started")

	obs, err := p.source.Observations(ctx)
	if err != nil {
		return p.fail(rep, fmt.Errorf("load observations: %w", err))
	}
	rep.Observations = len(obs)

	if len(obs) < cfg.MinObservations {
		rep.Status = StatusInsufficientData
		rep.Message = fmt.Sprintf("not enough ratings for a meaningful training (%d < %d)", len(obs), cfg.MinObservations)
		rep.finish(p.now())
		log.Info().Int("observations", len(obs)).Msg(rep.Message)
		return rep, ErrInsufficientData
	}

	means := UserMeans(obs)
	mp := AssignIndices(obs)
	Center(mp, means)

	rep.Dropped = mp.Dropped
	rep.Users = mp.Users.Len()
	rep.Items = mp.Items.Len()
	rep.Pairs = len(mp.Pairs)

	if len(mp.Pairs) == 0 {
		rep.Status = StatusInsufficientMapped
		rep.Message = "no valid rating pairs after mapping"
		rep.finish(p.now())
		log.Info().Int("dropped", mp.Dropped).Msg(rep.Message)
		return rep, ErrEmptyMapping
	}

	log.Info().
		Int("users", rep.Users).
		Int("items", rep.Items).
		Int("pairs", rep.Pairs).
		Int("dropped", rep.Dropped).
		Float64("lambda", cfg.Regularization).
		Int("dim", cfg.EmbeddingDim).
		Msg("training with mapped data")

	res, err := Train(mp, cfg, p.OnEpoch)
	if res != nil {
		rep.TrainPairs = res.TrainPairs
		rep.ValPairs = res.ValPairs
		rep.Epochs = res.Epochs
		rep.StoppedEarly = res.StoppedEarly
		rep.Diverged = res.Diverged
		rep.FinalLoss = Loss(res.Loss)
		rep.FinalValLoss = Loss(res.ValLoss)
	}
	if err != nil {
		return p.fail(rep, err)
	}
	if res.Diverged {
		log.Warn().Int("epoch", res.Epochs).Msg("training loss is not finite, keeping last parameters")
	}
	log.Info().
		Str("loss", rep.FinalLoss.String()).
		Str("val_loss", rep.FinalValLoss.String()).
		Int("epochs", rep.Epochs).
		Bool("stopped_early", rep.StoppedEarly).
		Msg("training finished")

	favorites, err := p.source.Favorites(ctx)
	if err != nil {
		return p.fail(rep, fmt.Errorf("load favorites: %w", err))
	}
	universe, err := p.source.Items(ctx)
	if err != nil {
		return p.fail(rep, fmt.Errorf("load items: %w", err))
	}

	p.persistParams(ctx, rep, mp, res.Model, log)
	p.persistRecommendations(ctx, rep, mp, res.Model, obs, means, favorites, universe, log)

	rep.Status = StatusCompleted
	rep.Message = "model trained and recommendations generated"
	rep.finish(p.now())
	log.Info().
		Int("users_updated", rep.UsersUpdated).
		Int("items_updated", rep.ItemsUpdated).
		Int("lists_written", rep.ListsWritten).
		Int("persist_failures", rep.PersistFailures).
		Int64("duration_ms", rep.DurationMS).
		Msg("training run completed")
	return rep, nil
}

//nolint:gocritic // log por valor
func (p *Pipeline) persistParams(ctx context.Context, rep *Report, mp *Mapping, model *Model, log zerolog.Logger) {
	trainedAt := p.now()
	for u := 0; u < mp.Users.Len(); u++ {
		id := mp.Users.ID(u)
		err := p.sink.SaveUserParams(ctx, id, UserParams{
			Embedding: model.UserVector(u),
			Bias:      model.UserBias(u),
			TrainedAt: trainedAt,
		})
		if err != nil {
			p.persistFailed(rep, log, &PersistenceError{Entity: "user", ID: id, Err: err})
			continue
		}
		rep.UsersUpdated++
	}

	for i := 0; i < mp.Items.Len(); i++ {
		id := mp.Items.ID(i)
		err := p.sink.SaveItemParams(ctx, id, ItemParams{
			Embedding: model.ItemVector(i),
			Bias:      model.ItemBias(i),
		})
		if err != nil {
			p.persistFailed(rep, log, &PersistenceError{Entity: "item", ID: id, Err: err})
			continue
		}
		rep.ItemsUpdated++
	}
}

//nolint:gocritic // log por valor
func (p *Pipeline) persistRecommendations(
	ctx context.Context,
	rep *Report,
	mp *Mapping,
	model *Model,
	obs []Observation,
	means map[string]float64,
	favorites map[string][]string,
	universe []string,
	log zerolog.Logger,
) {
	rated := make(map[string][]string)
	for _, o := range obs {
		if o.UserID != "" && o.ItemID != "" {
			rated[o.UserID] = append(rated[o.UserID], o.ItemID)
		}
	}

	for u := 0; u < mp.Users.Len(); u++ {
		id := mp.Users.ID(u)
		exclude := InteractionSet(rated[id], favorites[id])
		recs := TopN(model, mp.Users, mp.Items, id, means[id], universe, exclude, p.config.TopN)
		if recs == nil {
			recs = []Scored{}
		}
		if err := p.sink.SaveRecommendations(ctx, id, rep.RunID, recs); err != nil {
			p.persistFailed(rep, log, &PersistenceError{Entity: "recommendations", ID: id, Err: err})
			continue
		}
		rep.ListsWritten++
	}
}

//nolint:gocritic // log por valor
func (p *Pipeline) persistFailed(rep *Report, log zerolog.Logger, err *PersistenceError) {
	rep.PersistFailures++
	log.Error().Err(err.Err).Str("entity", err.Entity).Str("id", err.ID).Msg("persist failed, continuing")
}

func (p *Pipeline) fail(rep *Report, err error) (*Report, error) {
	rep.Status = StatusFailed
	rep.Message = err.Error()
	rep.finish(p.now())
	p.logger.Error().Err(err).Str("run_id", rep.RunID).Msg("training run failed")
	if errors.Is(err, ErrDiverged) {
		return rep, err
	}
	return rep, fmt.Errorf("recsys run %s: %w", rep.RunID, err)
}
