package config

type AppConfig struct {
	CurrencySign string `yaml:"currency-sign"`
}

func (s *AppConfig) Currency() string {
	return s.CurrencySign
}
