package config

// SpawningConfig holds the allocator limits
type SpawningConfig struct {
	// Host's maximum parts per worker
	MaxBodySize int `mapstructure:"max_body_size" validate:"min=1,max=50"`

	// Share of a full body the unassigned pool must reach in group mode
	DefaultThreshold float64 `mapstructure:"default_threshold" validate:"gt=0,lte=1"`
}
