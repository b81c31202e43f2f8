package assign

// Config holds the engine settings loaded from configuration.
type Config struct {
	Weights Weights `json:"weights"`
}

// DefaultConfig returns a Config carrying DefaultWeights. Configuration
// loaders decode on top of it so omitted weights keep their defaults.
func DefaultConfig() Config {
	return Config{Weights: DefaultWeights()}
}

// Validate checks the configured weights.
func (c Config) Validate() error {
	return c.Weights.Validate()
}
