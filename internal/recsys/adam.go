package recsys

import "math"

const (
	adamBeta1   = 0.9
	adamBeta2   = 0.999
	adamEpsilon = 1e-7
)

// table es una matriz rows x dim en un slice plano, con los momentos de Adam.
type table struct {
	dim  int
	w    []float64
	m    []float64
	v    []float64
	grad []float64
	seen []bool // fila tocada en el batch actual
}

func newTable(rows, dim int) *table {
	n := rows * dim
	return &table{
		dim:  dim,
		w:    make([]float64, n),
		m:    make([]float64, n),
		v:    make([]float64, n),
		grad: make([]float64, n),
		seen: make([]bool, rows),
	}
}

func (t *table) row(i int) []float64 { return t.w[i*t.dim : (i+1)*t.dim] }

func (t *table) gradRow(i int) []float64 { return t.grad[i*t.dim : (i+1)*t.dim] }

func (t *table) rows() int { return len(t.seen) }

func (t *table) sumSquares() float64 {
	var s float64
	for _, x := range t.w {
		s += x * x
	}
	return s
}

// adam aplica actualizaciones perezosas: solo las filas tocadas en el batch.
type adam struct {
	lr   float64
	step int
}

// apply suma el término L2 a cada fila tocada, actualiza con Adam y limpia el gradiente.
func (a *adam) apply(tables []*table, touched [][]int, l2 float64) {
	a.step++
	c1 := 1 - math.Pow(adamBeta1, float64(a.step))
	c2 := 1 - math.Pow(adamBeta2, float64(a.step))

	for ti, t := range tables {
		for _, r := range touched[ti] {
			base := r * t.dim
			for k := 0; k < t.dim; k++ {
				j := base + k
				g := t.grad[j] + 2*l2*t.w[j]
				t.m[j] = adamBeta1*t.m[j] + (1-adamBeta1)*g
				t.v[j] = adamBeta2*t.v[j] + (1-adamBeta2)*g*g
				mHat := t.m[j] / c1
				vHat := t.v[j] / c2
				t.w[j] -= a.lr * mHat / (math.Sqrt(vHat) + adamEpsilon)
				t.grad[j] = 0
			}
			t.seen[r] = false
		}
	}
}
