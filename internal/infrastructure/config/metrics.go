package config

// MetricsConfig holds the Prometheus endpoint configuration
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	Port int `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`

	// Bind address, localhost unless set
	Host string `mapstructure:"host"`

	Path string `mapstructure:"path" validate:"omitempty,startswith=/"`
}
