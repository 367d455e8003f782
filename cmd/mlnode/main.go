package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"os/signal"
	"syscall"

	"github.com/Amieurramy/updated-back-main/internal/cache"
	"github.com/Amieurramy/updated-back-main/internal/cluster"
	"github.com/Amieurramy/updated-back-main/internal/config"
	"github.com/Amieurramy/updated-back-main/internal/db"
	"github.com/Amieurramy/updated-back-main/internal/logging"
	"github.com/Amieurramy/updated-back-main/internal/models"
	"github.com/Amieurramy/updated-back-main/internal/recsys"
	"github.com/Amieurramy/updated-back-main/internal/repository"
	"github.com/Amieurramy/updated-back-main/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	once := flag.Bool("once", false, "entrena una vez con la config REC_* y termina")
	flag.Parse()

	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err := cfg.Validate(); err != nil {
		logging.Fatal().Err(err).Msg("configuración inválida")
	}

	if err := db.InitMongo(cfg); err != nil {
		logging.Fatal().Err(err).Msg("no se pudo conectar a Mongo")
	}

	logger := logging.Component("mlnode").With().Str("node", cfg.NodeID).Logger()

	// Sin Redis la invalidación del cache es no-op y la API ve las listas
	// nuevas cuando expira el TTL.
	if err := cache.InitRedis(cfg); err != nil {
		logger.Warn().Err(err).Msg("Redis no disponible, sin invalidación de cache")
	}

	store := repository.NewRecsysStore(
		repository.NewUserRepository(),
		repository.NewMenuItemRepository(),
		repository.NewRatingRepository(),
		repository.NewRecommendationRepository(),
		logging.Component("recsys-store"),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *once {
		// Ejecución directa (cron/CLI): sin coordinador, la corrida se guarda acá.
		svc := service.NewTrainingService(store, store, cfg.Training, repository.NewTrainingRunRepository(), nil, logger)
		rep, err := svc.Train(ctx, &models.TrainRequest{}, nil)
		if rep != nil {
			logger.Info().
				Str("run_id", rep.RunID).
				Str("status", string(rep.Status)).
				Int("epochs", rep.Epochs).
				Str("loss", rep.FinalLoss.String()).
				Msg("corrida terminada")
		}
		if err != nil && !recsys.IsNoop(err) {
			logger.Fatal().Err(err).Msg("entrenamiento fallido")
		}
		_ = db.Disconnect(context.Background())
		return
	}

	// Modo servidor: el coordinador guarda la corrida, el nodo solo entrena.
	svc := service.NewTrainingService(store, store, cfg.Training, nil, nil, logger)

	ln, err := net.Listen("tcp", cfg.MLNodeListen)
	if err != nil {
		logger.Fatal().Err(err).Msg("listen")
	}
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	logger.Info().Str("addr", cfg.MLNodeListen).Msg("nodo ML escuchando")

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			logger.Warn().Err(err).Msg("accept")
			continue
		}
		go handleConn(ctx, cfg.NodeID, conn, svc, logger)
	}

	_ = db.Disconnect(context.Background())
}

//nolint:gocritic // zerolog.Logger por valor
func handleConn(ctx context.Context, nodeID string, conn net.Conn, svc *service.TrainingService, logger zerolog.Logger) {
	defer conn.Close()

	task, err := cluster.ReadTask(conn)
	if err != nil {
		logger.Warn().Err(err).Str("remote", conn.RemoteAddr().String()).Msg("tarea inválida")
		return
	}

	logger.Info().
		Str("requested_by", task.RequestedBy).
		Int("dim", task.Config.EmbeddingDim).
		Int("max_epochs", task.Config.MaxEpochs).
		Msg("tarea recibida")

	w := cluster.NewWriter(conn)
	rep, err := svc.TrainConfig(ctx, task.Config, func(st recsys.EpochStats) {
		if werr := w.Epoch(st); werr != nil {
			logger.Debug().Err(werr).Msg("no se pudo enviar progreso")
		}
	})

	resp := &cluster.TrainResponse{NodeID: nodeID, Report: rep}
	if err != nil && !recsys.IsNoop(err) {
		resp.Error = err.Error()
	}
	if errors.Is(err, service.ErrRunInProgress) {
		resp.Busy = true
		logger.Warn().Msg("tarea rechazada: ya hay una corrida activa")
	}

	if err := w.Result(resp); err != nil {
		logger.Error().Err(err).Msg("no se pudo enviar el resultado")
		return
	}
	if rep != nil {
		logger.Info().
			Str("run_id", rep.RunID).
			Str("status", string(rep.Status)).
			Int("epochs", rep.Epochs).
			Msg("tarea completada")
	}
}
