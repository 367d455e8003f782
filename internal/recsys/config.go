package recsys

// Config agrupa los hiperparámetros de una corrida de entrenamiento.
type Config struct {
	// EmbeddingDim es la dimensión de los vectores latentes de usuario e ítem.
	EmbeddingDim int `json:"embeddingDim" bson:"embeddingDim"`

	// Regularization es el coeficiente L2 aplicado a embeddings y biases.
	Regularization float64 `json:"regularization" bson:"regularization"`

	LearningRate float64 `json:"learningRate" bson:"learningRate"`
	MaxEpochs    int     `json:"maxEpochs" bson:"maxEpochs"`
	BatchSize    int     `json:"batchSize" bson:"batchSize"`

	// ValidationSplit es la fracción de pares reservada para validación (0 la desactiva).
	ValidationSplit float64 `json:"validationSplit" bson:"validationSplit"`

	// Early stopping sobre la pérdida de validación.
	Patience int     `json:"patience" bson:"patience"`
	MinDelta float64 `json:"minDelta" bson:"minDelta"`

	// MinObservations: por debajo de este número de ratings no se entrena.
	MinObservations int `json:"minObservations" bson:"minObservations"`

	// TopN es el largo máximo de la lista de recomendaciones por usuario.
	TopN int `json:"topN" bson:"topN"`

	Seed int64 `json:"seed" bson:"seed"`

	// FailOnDivergence convierte una pérdida no finita en error en vez de reportar "N/A".
	FailOnDivergence bool `json:"failOnDivergence" bson:"failOnDivergence"`
}

// DefaultConfig devuelve los valores del sistema de referencia.
func DefaultConfig() Config {
	return Config{
		EmbeddingDim:    10,
		Regularization:  0.01,
		LearningRate:    0.005,
		MaxEpochs:       30,
		BatchSize:       32,
		ValidationSplit: 0.1,
		Patience:        5,
		MinDelta:        0.0005,
		MinObservations: 10,
		TopN:            15,
		Seed:            42,
	}
}

// withDefaults rellena los campos en cero con DefaultConfig.
// ValidationSplit, MinDelta, Regularization y MinObservations aceptan 0 como
// valor explícito; solo un negativo toma el default.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.EmbeddingDim <= 0 {
		c.EmbeddingDim = d.EmbeddingDim
	}
	if c.Regularization < 0 {
		c.Regularization = d.Regularization
	}
	if c.LearningRate <= 0 {
		c.LearningRate = d.LearningRate
	}
	if c.MaxEpochs <= 0 {
		c.MaxEpochs = d.MaxEpochs
	}
	if c.BatchSize <= 0 {
		c.BatchSize = d.BatchSize
	}
	if c.ValidationSplit < 0 || c.ValidationSplit >= 1 {
		c.ValidationSplit = d.ValidationSplit
	}
	if c.Patience <= 0 {
		c.Patience = d.Patience
	}
	if c.MinDelta < 0 {
		c.MinDelta = d.MinDelta
	}
	if c.MinObservations < 0 {
		c.MinObservations = d.MinObservations
	}
	if c.TopN <= 0 {
		c.TopN = d.TopN
	}
	if c.Seed == 0 {
		c.Seed = d.Seed
	}
	return c
}
