package recsys

import (
	"math"
	"strconv"
	"time"
)

// Status es el resultado de una corrida del pipeline.
type Status string

const (
	StatusInsufficientData   Status = "insufficient_data"
	StatusInsufficientMapped Status = "insufficient_mapped_data"
	StatusCompleted          Status = "completed"
	StatusFailed             Status = "failed"
)

// Loss es una pérdida reportada; NaN o Inf se serializan como "N/A".
type Loss float64

func (l Loss) Valid() bool { return isFinite(float64(l)) }

func (l Loss) String() string {
	if !l.Valid() {
		return "N/A"
	}
	return strconv.FormatFloat(float64(l), 'f', 6, 64)
}

func (l Loss) MarshalJSON() ([]byte, error) {
	if !l.Valid() {
		return []byte(`"N/A"`), nil
	}
	return []byte(strconv.FormatFloat(float64(l), 'g', -1, 64)), nil
}

func (l *Loss) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == `"N/A"` || s == "null" {
		*l = Loss(math.NaN())
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*l = Loss(f)
	return nil
}

// Report resume una corrida completa; se devuelve al llamador y se guarda en training_runs.
type Report struct {
	RunID   string `json:"runId" bson:"runId"`
	Status  Status `json:"status" bson:"status"`
	Message string `json:"message" bson:"message"`
	Config  Config `json:"config" bson:"config"`

	Observations int `json:"observations" bson:"observations"`
	Dropped      int `json:"dropped" bson:"dropped"`
	Users        int `json:"users" bson:"users"`
	Items        int `json:"items" bson:"items"`
	Pairs        int `json:"pairs" bson:"pairs"`
	TrainPairs   int `json:"trainPairs" bson:"trainPairs"`
	ValPairs     int `json:"valPairs" bson:"valPairs"`

	Epochs       int  `json:"epochs" bson:"epochs"`
	StoppedEarly bool `json:"stoppedEarly" bson:"stoppedEarly"`
	Diverged     bool `json:"diverged" bson:"diverged"`
	FinalLoss    Loss `json:"finalLoss" bson:"finalLoss"`
	FinalValLoss Loss `json:"finalValLoss" bson:"finalValLoss"`

	UsersUpdated    int `json:"usersUpdated" bson:"usersUpdated"`
	ItemsUpdated    int `json:"itemsUpdated" bson:"itemsUpdated"`
	ListsWritten    int `json:"listsWritten" bson:"listsWritten"`
	PersistFailures int `json:"persistFailures" bson:"persistFailures"`

	StartedAt  time.Time `json:"startedAt" bson:"startedAt"`
	FinishedAt time.Time `json:"finishedAt" bson:"finishedAt"`
	DurationMS int64     `json:"durationMs" bson:"durationMs"`
}

func (r *Report) finish(now time.Time) {
	r.FinishedAt = now
	r.DurationMS = now.Sub(r.StartedAt).Milliseconds()
}
