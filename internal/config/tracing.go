package config

type TracingConfig struct {
	EnabledVal bool   `yaml:"enabled"`
	ServiceVal string `yaml:"service-name"`
}

func (t *TracingConfig) Enabled() bool {
	return t.EnabledVal
}

func (t *TracingConfig) ServiceName() string {
	return t.ServiceVal
}
