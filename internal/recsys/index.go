package recsys

// Provenance de una observación.
const (
	SourceExplicit = "explicit"
	SourceImputed  = "imputed"
)

// ImputedRating es el valor fijo que inserta el flujo de preferencias cuando el perfil
// del usuario choca con los atributos de un plato.
const ImputedRating = 0.5

// Observation es una señal (usuario, ítem, rating). Un ID vacío significa que la
// referencia no se pudo resolver en la base.
type Observation struct {
	UserID string  `json:"userId"`
	ItemID string  `json:"itemId"`
	Rating float64 `json:"rating"`
	Source string  `json:"source,omitempty"`
}

// RunIndex es una biyección identidad <-> [0, Len) válida solo durante una corrida.
type RunIndex struct {
	toIndex map[string]int
	toID    []string
}

func newRunIndex() *RunIndex {
	return &RunIndex{toIndex: make(map[string]int)}
}

// assign devuelve el índice de id, creándolo en orden de primera aparición.
func (x *RunIndex) assign(id string) int {
	if i, ok := x.toIndex[id]; ok {
		return i
	}
	i := len(x.toID)
	x.toIndex[id] = i
	x.toID = append(x.toID, id)
	return i
}

func (x *RunIndex) Index(id string) (int, bool) {
	i, ok := x.toIndex[id]
	return i, ok
}

func (x *RunIndex) ID(i int) string {
	if i < 0 || i >= len(x.toID) {
		return ""
	}
	return x.toID[i]
}

func (x *RunIndex) Len() int { return len(x.toID) }

// IDs devuelve las identidades en orden de índice.
func (x *RunIndex) IDs() []string {
	out := make([]string, len(x.toID))
	copy(out, x.toID)
	return out
}

// Pair es una observación ya mapeada a índices de la corrida.
type Pair struct {
	User   int
	Item   int
	Rating float64 // rating original
	Target float64 // rating - media del usuario
}

// Mapping agrupa los dos RunIndex de una corrida y los pares de entrenamiento.
type Mapping struct {
	Users   *RunIndex
	Items   *RunIndex
	Pairs   []Pair
	Dropped int // observaciones con usuario o ítem sin resolver
}

// AssignIndices recorre las observaciones en orden y asigna índices densos a cada
// usuario e ítem nuevo. Las observaciones con referencias rotas se descartan.
// Target queda en 0; lo completa Center.
func AssignIndices(obs []Observation) *Mapping {
	m := &Mapping{
		Users: newRunIndex(),
		Items: newRunIndex(),
		Pairs: make([]Pair, 0, len(obs)),
	}
	for _, o := range obs {
		if o.UserID == "" || o.ItemID == "" {
			m.Dropped++
			continue
		}
		m.Pairs = append(m.Pairs, Pair{
			User:   m.Users.assign(o.UserID),
			Item:   m.Items.assign(o.ItemID),
			Rating: o.Rating,
		})
	}
	return m
}
