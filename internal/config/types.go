package config

// Config is the top-level ferrisdoc configuration, corresponding to .ferrisdoc.yml.
type Config struct {
	BookDir        string       `yaml:"book_dir" koanf:"book_dir"`
	OutputDir      string       `yaml:"output_dir" koanf:"output_dir"`
	Locale         string       `yaml:"locale" koanf:"locale"`
	Include        []string     `yaml:"include" koanf:"include"`
	Exclude        []string     `yaml:"exclude" koanf:"exclude"`
	MaxConcurrency int          `yaml:"max_concurrency" koanf:"max_concurrency"`
	SkipAnnotated  bool         `yaml:"skip_annotated" koanf:"skip_annotated"`
	HistoryDB      string       `yaml:"history_db" koanf:"history_db"`
	Server         ServerConfig `yaml:"server" koanf:"server"`
}

// ServerConfig holds settings for `ferrisdoc serve`.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// InPlace reports whether pages are rewritten where they are found.
func (c *Config) InPlace() bool {
	return c.OutputDir == ""
}
