package config

// CycleConfig controls `cycle run`
type CycleConfig struct {
	// Cycles per second; 0 runs unthrottled
	Rate float64 `mapstructure:"rate" validate:"min=0"`

	Burst int `mapstructure:"burst" validate:"min=1"`

	// Tick the first cycle runs at
	StartTick int `mapstructure:"start_tick" validate:"min=0"`

	// PID file held while cycles run
	LockFile string `mapstructure:"lock_file"`
}
