package recsys

import (
	"fmt"
	"math"
	"math/rand"
)

const initScale = 0.05

// Model guarda los factores latentes y biases aprendidos, indexados por RunIndex.
type Model struct {
	Dim   int
	userF *table
	itemF *table
	userB *table
	itemB *table
}

func newModel(numUsers, numItems, dim int, rng *rand.Rand) *Model {
	m := &Model{
		Dim:   dim,
		userF: newTable(numUsers, dim),
		itemF: newTable(numItems, dim),
		userB: newTable(numUsers, 1),
		itemB: newTable(numItems, 1),
	}
	for _, t := range m.tables() {
		for j := range t.w {
			t.w[j] = (rng.Float64()*2 - 1) * initScale
		}
	}
	return m
}

func (m *Model) tables() []*table {
	return []*table{m.userF, m.itemF, m.userB, m.itemB}
}

func (m *Model) NumUsers() int { return m.userF.rows() }
func (m *Model) NumItems() int { return m.itemF.rows() }

// UserVector devuelve una copia del embedding del usuario u.
func (m *Model) UserVector(u int) []float64 {
	return append([]float64(nil), m.userF.row(u)...)
}

func (m *Model) ItemVector(i int) []float64 {
	return append([]float64(nil), m.itemF.row(i)...)
}

func (m *Model) UserBias(u int) float64 { return m.userB.w[u] }
func (m *Model) ItemBias(i int) float64 { return m.itemB.w[i] }

// Predict devuelve el rating centrado: dot(p_u, q_i) + b_u + b_i.
func (m *Model) Predict(u, i int) float64 {
	p := m.userF.row(u)
	q := m.itemF.row(i)
	var dot float64
	for k := range p {
		dot += p[k] * q[k]
	}
	return dot + m.userB.w[u] + m.itemB.w[i]
}

// loss = MSE sobre los pares seleccionados + l2 * suma de cuadrados de todos los parámetros.
func (m *Model) loss(pairs []Pair, idx []int, l2 float64) float64 {
	if len(idx) == 0 {
		return math.NaN()
	}
	var se float64
	for _, j := range idx {
		p := pairs[j]
		e := m.Predict(p.User, p.Item) - p.Target
		se += e * e
	}
	var reg float64
	if l2 > 0 {
		for _, t := range m.tables() {
			reg += t.sumSquares()
		}
	}
	return se/float64(len(idx)) + l2*reg
}

// EpochStats se emite al final de cada época. ValLoss es NaN sin validación.
type EpochStats struct {
	Epoch   int     `json:"epoch"`
	Loss    float64 `json:"loss"`
	ValLoss float64 `json:"valLoss"`
}

// TrainResult es la salida del entrenamiento.
type TrainResult struct {
	Model        *Model
	Loss         float64
	ValLoss      float64
	Epochs       int
	StoppedEarly bool
	Diverged     bool
	TrainPairs   int
	ValPairs     int
	History      []EpochStats
}

// splitValidation baraja los índices de pares una vez y reserva la cola como validación,
// con el mismo redondeo que Keras (splitAt = floor(n * (1 - split))). Si alguno de los
// dos conjuntos queda vacío se entrena con todo y sin validación.
func splitValidation(n int, split float64, rng *rand.Rand) (train, val []int) {
	perm := rng.Perm(n)
	if split <= 0 {
		return perm, nil
	}
	at := int(math.Floor(float64(n) * (1 - split)))
	if at <= 0 || at >= n {
		return perm, nil
	}
	return perm[:at], perm[at:]
}

// Train ajusta una factorización con biases sobre los targets centrados del mapping,
// con Adam por mini-batches, regularización L2 y early stopping sobre validación.
// L2 y Adam solo tocan las filas presentes en cada batch: un usuario o plato que
// cae entero en el split de validación conserva su inicialización aleatoria, y
// igual se devuelve en el modelo.
func Train(mp *Mapping, cfg Config, onEpoch func(EpochStats)) (*TrainResult, error) {
	cfg = cfg.withDefaults()
	if mp == nil || len(mp.Pairs) == 0 {
		return nil, ErrEmptyMapping
	}

	//nolint:gosec // math/rand alcanza para inicialización y barajado
	rng := rand.New(rand.NewSource(cfg.Seed))

	model := newModel(mp.Users.Len(), mp.Items.Len(), cfg.EmbeddingDim, rng)
	trainIdx, valIdx := splitValidation(len(mp.Pairs), cfg.ValidationSplit, rng)

	res := &TrainResult{
		Model:      model,
		Loss:       math.NaN(),
		ValLoss:    math.NaN(),
		TrainPairs: len(trainIdx),
		ValPairs:   len(valIdx),
	}

	opt := &adam{lr: cfg.LearningRate}
	tables := model.tables()
	touched := make([][]int, len(tables))
	l2 := cfg.Regularization

	best := math.Inf(1)
	wait := 0

	for epoch := 1; epoch <= cfg.MaxEpochs; epoch++ {
		rng.Shuffle(len(trainIdx), func(i, j int) {
			trainIdx[i], trainIdx[j] = trainIdx[j], trainIdx[i]
		})

		for start := 0; start < len(trainIdx); start += cfg.BatchSize {
			end := start + cfg.BatchSize
			if end > len(trainIdx) {
				end = len(trainIdx)
			}
			batch := trainIdx[start:end]
			scale := 2 / float64(len(batch))

			for ti := range touched {
				touched[ti] = touched[ti][:0]
			}

			for _, j := range batch {
				p := mp.Pairs[j]
				coef := scale * (model.Predict(p.User, p.Item) - p.Target)

				pu := model.userF.row(p.User)
				qi := model.itemF.row(p.Item)
				gu := model.userF.gradRow(p.User)
				gi := model.itemF.gradRow(p.Item)
				for k := range pu {
					gu[k] += coef * qi[k]
					gi[k] += coef * pu[k]
				}
				model.userB.grad[p.User] += coef
				model.itemB.grad[p.Item] += coef

				rows := [4]int{p.User, p.Item, p.User, p.Item}
				for ti, t := range tables {
					if !t.seen[rows[ti]] {
						t.seen[rows[ti]] = true
						touched[ti] = append(touched[ti], rows[ti])
					}
				}
			}

			opt.apply(tables, touched, l2)
		}

		stats := EpochStats{
			Epoch:   epoch,
			Loss:    model.loss(mp.Pairs, trainIdx, l2),
			ValLoss: math.NaN(),
		}
		if len(valIdx) > 0 {
			stats.ValLoss = model.loss(mp.Pairs, valIdx, l2)
		}

		res.Epochs = epoch
		res.Loss = stats.Loss
		res.ValLoss = stats.ValLoss
		res.History = append(res.History, stats)
		if onEpoch != nil {
			onEpoch(stats)
		}

		if !isFinite(stats.Loss) || (len(valIdx) > 0 && !isFinite(stats.ValLoss)) {
			res.Diverged = true
			res.Loss, res.ValLoss = math.NaN(), math.NaN()
			if cfg.FailOnDivergence {
				return res, fmt.Errorf("epoch %d: %w", epoch, ErrDiverged)
			}
			break
		}

		if len(valIdx) == 0 {
			continue
		}
		if stats.ValLoss < best-cfg.MinDelta {
			best = stats.ValLoss
			wait = 0
			continue
		}
		wait++
		if wait >= cfg.Patience {
			res.StoppedEarly = true
			break
		}
	}

	return res, nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
