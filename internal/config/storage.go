package config

type StorageConfig struct {
	DriverName string `yaml:"driver"`
	DataDirVal string `yaml:"data-dir"`
	SQLiteVal  string `yaml:"sqlite-path"`
}

func (s *StorageConfig) Driver() string {
	return s.DriverName
}

func (s *StorageConfig) DataDir() string {
	return s.DataDirVal
}

func (s *StorageConfig) SQLitePath() string {
	if s.SQLiteVal != "" {
		return s.SQLiteVal
	}
	return "budget_tracker.db"
}
