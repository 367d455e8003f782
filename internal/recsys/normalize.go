package recsys

// UserMeans calcula la media aritmética de ratings por usuario sobre todas las
// observaciones con usuario resuelto (aunque el ítem esté roto).
func UserMeans(obs []Observation) map[string]float64 {
	type acc struct {
		sum   float64
		count int
	}
	sums := make(map[string]*acc)
	for _, o := range obs {
		if o.UserID == "" {
			continue
		}
		a, ok := sums[o.UserID]
		if !ok {
			a = &acc{}
			sums[o.UserID] = a
		}
		a.sum += o.Rating
		a.count++
	}

	means := make(map[string]float64, len(sums))
	for id, a := range sums {
		if a.count > 0 {
			means[id] = a.sum / float64(a.count)
		}
	}
	return means
}

// Center completa Target = Rating - media del usuario en cada par del mapping.
// Un usuario sin media conocida se centra con 0.
func Center(m *Mapping, means map[string]float64) {
	for i := range m.Pairs {
		p := &m.Pairs[i]
		p.Target = p.Rating - means[m.Users.ID(p.User)]
	}
}
