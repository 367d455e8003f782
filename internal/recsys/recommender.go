package recsys

import "sort"

// Scored es un ítem candidato con su rating predicho en la escala original.
type Scored struct {
	ItemID string  `json:"itemId" bson:"menuItemId"`
	Score  float64 `json:"score" bson:"score"`
}

// InteractionSet une los ítems valorados y los favoritos de un usuario.
func InteractionSet(rated, favorites []string) map[string]struct{} {
	set := make(map[string]struct{}, len(rated)+len(favorites))
	for _, id := range rated {
		set[id] = struct{}{}
	}
	for _, id := range favorites {
		set[id] = struct{}{}
	}
	return set
}

// TopN puntúa cada ítem del universo que tenga parámetros en esta corrida y no esté
// en exclude, y devuelve los n mejores en orden descendente. Los empates conservan el
// orden del universo (sort estable). Scores no finitos se descartan.
// Devuelve nil si el usuario no está en el índice de la corrida.
func TopN(
	model *Model,
	users, items *RunIndex,
	userID string,
	userMean float64,
	universe []string,
	exclude map[string]struct{},
	n int,
) []Scored {
	u, ok := users.Index(userID)
	if !ok || n <= 0 {
		return nil
	}

	cands := make([]Scored, 0, len(universe))
	seen := make(map[string]struct{}, len(universe))
	for _, itemID := range universe {
		if _, skip := exclude[itemID]; skip {
			continue
		}
		if _, dup := seen[itemID]; dup {
			continue
		}
		seen[itemID] = struct{}{}
		i, ok := items.Index(itemID)
		if !ok {
			continue
		}
		score := model.Predict(u, i) + userMean
		if !isFinite(score) {
			continue
		}
		cands = append(cands, Scored{ItemID: itemID, Score: score})
	}

	sort.SliceStable(cands, func(a, b int) bool { return cands[a].Score > cands[b].Score })
	if len(cands) > n {
		cands = cands[:n]
	}
	return cands
}
