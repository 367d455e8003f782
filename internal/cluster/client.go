package cluster

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/Amieurramy/updated-back-main/internal/recsys"

	"github.com/goccy/go-json"
)

var (
	ErrNoResult    = errors.New("cluster: node closed the connection without a result")
	ErrNodeBusy    = errors.New("cluster: node is already running a training")
	ErrUnreachable = errors.New("cluster: node unreachable") // la tarea no llegó al nodo
)

// SendTask envía la tarea a un nodo y lee los mensajes de progreso hasta el resultado.
// onEpoch puede ser nil.
func SendTask(ctx context.Context, addr string, task *TrainTask, onEpoch func(recsys.EpochStats)) (*TrainResponse, error) {
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if err := json.NewEncoder(conn).Encode(task); err != nil {
		return nil, fmt.Errorf("encode task: %w", err)
	}

	dec := json.NewDecoder(bufio.NewReader(conn))
	for {
		var msg Message
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, ErrNoResult
			}
			return nil, fmt.Errorf("decode message: %w", err)
		}
		switch msg.Type {
		case MsgEpoch:
			if onEpoch != nil && msg.Epoch != nil {
				onEpoch(msg.Epoch.Stats())
			}
		case MsgResult:
			if msg.Result == nil {
				return nil, ErrNoResult
			}
			return msg.Result, nil
		}
	}
}

// Writer serializa mensajes hacia el coordinador (lado nodo).
type Writer struct {
	enc *json.Encoder
}

func NewWriter(conn net.Conn) *Writer {
	return &Writer{enc: json.NewEncoder(conn)}
}

func (w *Writer) Epoch(s recsys.EpochStats) error {
	return w.enc.Encode(&Message{Type: MsgEpoch, Epoch: NewEpochProgress(s)})
}

func (w *Writer) Result(resp *TrainResponse) error {
	return w.enc.Encode(&Message{Type: MsgResult, Result: resp})
}

// ReadTask lee la tarea inicial enviada por el coordinador.
func ReadTask(conn net.Conn) (*TrainTask, error) {
	var task TrainTask
	if err := json.NewDecoder(bufio.NewReader(conn)).Decode(&task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ErrorFromReport reconstruye el error de una corrida remota a partir de su estado.
func ErrorFromReport(resp *TrainResponse) error {
	if resp.Busy {
		return ErrNodeBusy
	}
	if resp.Report == nil {
		if resp.Error == "" {
			return ErrNoResult
		}
		return errors.New(resp.Error)
	}
	switch resp.Report.Status {
	case recsys.StatusInsufficientData:
		return recsys.ErrInsufficientData
	case recsys.StatusInsufficientMapped:
		return recsys.ErrEmptyMapping
	case recsys.StatusFailed:
		if resp.Report.Diverged {
			return recsys.ErrDiverged
		}
		return fmt.Errorf("node %s: %s", resp.NodeID, resp.Error)
	}
	return nil
}
