package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/manifoldco/promptui"
)

// bookDirCandidates are the output directories mdBook and common wrappers use.
var bookDirCandidates = []string{"book", "book/html", "docs", "public"}

// detectBookDir returns the first candidate that holds an index.html.
func detectBookDir() string {
	for _, dir := range bookDirCandidates {
		if _, err := os.Stat(filepath.Join(dir, "index.html")); err == nil {
			return dir
		}
	}
	return "book"
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to ferrisdoc! Let's configure your book.")
	fmt.Println()

	defaults := DefaultConfig()

	// 1. Book directory.
	bookPrompt := promptui.Prompt{
		Label:   "Rendered book directory",
		Default: detectBookDir(),
	}
	bookDir, err := bookPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("book dir: %w", err)
	}

	// 2. Output mode.
	modePrompt := promptui.Select{
		Label: "Where should annotated pages go",
		Items: []string{
			"in place — rewrite pages inside the book directory",
			"copy     — write annotated pages to a separate directory",
		},
	}
	modeIdx, _, err := modePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output mode: %w", err)
	}
	outputDir := ""
	if modeIdx == 1 {
		outputPrompt := promptui.Prompt{
			Label:   "Output directory",
			Default: "book-annotated",
		}
		outputDir, err = outputPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("output dir: %w", err)
		}
	}

	// 3. Tooltip language.
	localePrompt := promptui.Select{
		Label: "Tooltip language",
		Items: []string{"zh-TW", "en"},
	}
	_, locale, err := localePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("locale selection: %w", err)
	}

	// 4. Extra exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	exclude := defaults.Exclude
	if excludeStr != "" {
		exclude = append(exclude, splitAndTrim(excludeStr)...)
	}

	// 5. Dev server port.
	portPrompt := promptui.Prompt{
		Label:   "Port for `ferrisdoc serve`",
		Default: strconv.Itoa(defaults.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	cfg := defaults
	cfg.BookDir = bookDir
	cfg.OutputDir = outputDir
	cfg.Locale = locale
	cfg.Exclude = exclude
	cfg.Server.Port = port

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(filepath.Join(bookDir, "index.html")); err != nil {
		fmt.Printf("\nNote: %s has no index.html yet. Run `mdbook build` before `ferrisdoc annotate`.\n", bookDir)
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			token := trimSpace(s[start:i])
			if token != "" {
				result = append(result, token)
			}
			start = i + 1
		}
	}
	return result
}

func trimSpace(s string) string {
	i, j := 0, len(s)
	for i < j && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	for j > i && (s[j-1] == ' ' || s[j-1] == '\t') {
		j--
	}
	return s[i:j]
}
