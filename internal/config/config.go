package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	configFileEnvKey  = "CONFIG_FILE"
	defaultConfigFile = "data/config.yaml"
)

type config struct {
	App     AppConfig     `yaml:"app"`
	Storage StorageConfig `yaml:"storage"`
	Tracing TracingConfig `yaml:"tracing"`
}

type Service struct {
	config config
}

// New reads the YAML config file. A missing file is not an error:
// the app must come up with defaults on a fresh machine.
func New() (*Service, error) {
	s := &Service{config: defaultConfig()}

	file := os.Getenv(configFileEnvKey)
	if file == "" {
		file = defaultConfigFile
	}

	rawYAML, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.Wrap(err, "reading config file")
	}

	err = yaml.Unmarshal(rawYAML, &s.config)
	if err != nil {
		return nil, errors.Wrap(err, "parsing yaml")
	}

	return s, nil
}

func defaultConfig() config {
	return config{
		App: AppConfig{
			CurrencySign: "$",
		},
		Storage: StorageConfig{
			DriverName: "file",
			DataDirVal: "data",
		},
		Tracing: TracingConfig{
			ServiceVal: "budget-app",
		},
	}
}

func (s *Service) App() *AppConfig {
	return &s.config.App
}

func (s *Service) Storage() *StorageConfig {
	return &s.config.Storage
}

func (s *Service) Tracing() *TracingConfig {
	return &s.config.Tracing
}
