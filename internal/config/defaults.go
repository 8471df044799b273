package config

// DefaultConfigFile is the config path used when --config is not given.
const DefaultConfigFile = ".ferrisdoc.yml"

// DefaultIncludes selects the rendered pages of a book.
var DefaultIncludes = []string{"**/*.html"}

// DefaultExcludes are glob patterns for mdBook output that never carries
// annotated code blocks.
var DefaultExcludes = []string{
	"print.html",
	"toc.html",
	"404.html",
	"FontAwesome/**",
	"fonts/**",
	"css/**",
	"img/**",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BookDir:        "book",
		OutputDir:      "",
		Locale:         "zh-TW",
		Include:        append([]string(nil), DefaultIncludes...),
		Exclude:        append([]string(nil), DefaultExcludes...),
		MaxConcurrency: 4,
		SkipAnnotated:  true,
		HistoryDB:      ".ferrisdoc/history.db",
		Server: ServerConfig{
			Port: 3000,
		},
	}
}
