package cluster

import (
	"context"
	"errors"
	"math"
	"net"
	"testing"
	"time"

	"github.com/Amieurramy/updated-back-main/internal/recsys"
)

// fakeNode atiende una sola conexión: lee la tarea, emite dos épocas y el resultado.
func fakeNode(t *testing.T, resp *TrainResponse) (string, <-chan *TrainTask) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	got := make(chan *TrainTask, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		task, err := ReadTask(conn)
		if err != nil {
			return
		}
		got <- task

		w := NewWriter(conn)
		_ = w.Epoch(recsys.EpochStats{Epoch: 1, Loss: 0.9, ValLoss: math.NaN()})
		_ = w.Epoch(recsys.EpochStats{Epoch: 2, Loss: 0.7, ValLoss: math.NaN()})
		if resp != nil {
			_ = w.Result(resp)
		}
	}()
	return ln.Addr().String(), got
}

func TestSendTask_StreamsEpochsThenResult(t *testing.T) {
	t.Parallel()

	rep := &recsys.Report{RunID: "run-1", Status: recsys.StatusCompleted, Epochs: 2, FinalLoss: 0.7}
	addr, tasks := fakeNode(t, &TrainResponse{NodeID: "n1", Report: rep})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var epochs []recsys.EpochStats
	cfg := recsys.DefaultConfig()
	cfg.TopN = 7
	resp, err := SendTask(ctx, addr, &TrainTask{Config: cfg, RequestedBy: "admin"}, func(s recsys.EpochStats) {
		epochs = append(epochs, s)
	})
	if err != nil {
		t.Fatalf("SendTask() error = %v", err)
	}

	task := <-tasks
	if task.Config.TopN != 7 || task.RequestedBy != "admin" {
		t.Errorf("task = %+v, want TopN 7 requested by admin", task)
	}
	if len(epochs) != 2 || epochs[1].Epoch != 2 || epochs[1].Loss != 0.7 {
		t.Errorf("epochs = %+v", epochs)
	}
	if !math.IsNaN(epochs[0].ValLoss) {
		t.Errorf("ValLoss = %v, want NaN to survive the wire", epochs[0].ValLoss)
	}
	if resp.NodeID != "n1" || resp.Report == nil || resp.Report.RunID != "run-1" {
		t.Errorf("resp = %+v", resp)
	}
	if err := ErrorFromReport(resp); err != nil {
		t.Errorf("ErrorFromReport() = %v, want nil", err)
	}
}

func TestSendTask_NoResult(t *testing.T) {
	t.Parallel()

	addr, _ := fakeNode(t, nil)
	_, err := SendTask(context.Background(), addr, &TrainTask{}, nil)
	if !errors.Is(err, ErrNoResult) {
		t.Errorf("SendTask() error = %v, want ErrNoResult", err)
	}
}

func TestErrorFromReport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		resp *TrainResponse
		want error
	}{
		{"insufficient", &TrainResponse{Report: &recsys.Report{Status: recsys.StatusInsufficientData}}, recsys.ErrInsufficientData},
		{"empty mapping", &TrainResponse{Report: &recsys.Report{Status: recsys.StatusInsufficientMapped}}, recsys.ErrEmptyMapping},
		{"diverged", &TrainResponse{Report: &recsys.Report{Status: recsys.StatusFailed, Diverged: true}}, recsys.ErrDiverged},
		{"no report", &TrainResponse{}, ErrNoResult},
		{"busy", &TrainResponse{Busy: true, Error: "a training run is already in progress"}, ErrNodeBusy},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ErrorFromReport(tt.resp); !errors.Is(got, tt.want) {
				t.Errorf("ErrorFromReport() = %v, want %v", got, tt.want)
			}
		})
	}

	failed := &TrainResponse{NodeID: "n2", Report: &recsys.Report{Status: recsys.StatusFailed}, Error: "mongo down"}
	if err := ErrorFromReport(failed); err == nil || err.Error() != "node n2: mongo down" {
		t.Errorf("ErrorFromReport(failed) = %v", err)
	}
}

func TestSendTask_Unreachable(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	_, err = SendTask(context.Background(), addr, &TrainTask{}, nil)
	if !errors.Is(err, ErrUnreachable) {
		t.Errorf("SendTask() error = %v, want ErrUnreachable", err)
	}
}
