package cluster

import "github.com/Amieurramy/updated-back-main/internal/recsys"

// Tipos de mensaje del protocolo coordinador ↔ nodo (una línea JSON por mensaje).
const (
	MsgEpoch  = "epoch"
	MsgResult = "result"
)

// Tarea enviada desde el coordinador (API) a un nodo de entrenamiento.
type TrainTask struct {
	Config      recsys.Config `json:"config"`
	RequestedBy string        `json:"requestedBy,omitempty"`
}

// Mensaje que el nodo escribe en la conexión: cero o más "epoch" y un "result" final.
type Message struct {
	Type   string         `json:"type"`
	Epoch  *EpochProgress `json:"epoch,omitempty"`
	Result *TrainResponse `json:"result,omitempty"`
}

// EpochProgress es recsys.EpochStats con las pérdidas serializables ("N/A" si no son finitas).
type EpochProgress struct {
	Epoch   int         `json:"epoch"`
	Loss    recsys.Loss `json:"loss"`
	ValLoss recsys.Loss `json:"valLoss"`
}

func NewEpochProgress(s recsys.EpochStats) *EpochProgress {
	return &EpochProgress{Epoch: s.Epoch, Loss: recsys.Loss(s.Loss), ValLoss: recsys.Loss(s.ValLoss)}
}

func (p *EpochProgress) Stats() recsys.EpochStats {
	return recsys.EpochStats{Epoch: p.Epoch, Loss: float64(p.Loss), ValLoss: float64(p.ValLoss)}
}

// Respuesta final de un nodo. Error viene vacío salvo en corridas fallidas.
// Busy indica que el nodo rechazó la tarea porque ya está entrenando.
type TrainResponse struct {
	NodeID string         `json:"nodeId"`
	Report *recsys.Report `json:"report,omitempty"`
	Busy   bool           `json:"busy,omitempty"`
	Error  string         `json:"error,omitempty"`
}
