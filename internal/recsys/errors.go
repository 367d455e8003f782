package recsys

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientData: menos observaciones que Config.MinObservations.
	ErrInsufficientData = errors.New("recsys: not enough ratings for a meaningful training")

	// ErrEmptyMapping: ninguna observación sobrevivió al mapeo (referencias rotas).
	ErrEmptyMapping = errors.New("recsys: no valid rating pairs after mapping")

	// ErrDiverged solo se devuelve si Config.FailOnDivergence está activo.
	ErrDiverged = errors.New("recsys: training loss is not finite")
)

// IsNoop indica si err es uno de los abortos "nada que hacer" del pipeline.
func IsNoop(err error) bool {
	return errors.Is(err, ErrInsufficientData) || errors.Is(err, ErrEmptyMapping)
}

// PersistenceError envuelve el fallo de escritura de una sola entidad.
type PersistenceError struct {
	Entity string // user | item | recommendations
	ID     string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("recsys: persist %s %s: %v", e.Entity, e.ID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
