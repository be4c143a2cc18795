package output

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rgehrsitz/patrimoine/internal/domain"
)

// Formatter renders a scenario comparison.
type Formatter interface {
	Name() string
	Format(results *domain.ScenarioComparison) ([]byte, error)
}

// FormatterFunc adapts a function to Formatter.
type FormatterFunc struct {
	ID string
	F  func(results *domain.ScenarioComparison) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(results *domain.ScenarioComparison) ([]byte, error) {
	return f.F(results)
}

var formatters = map[string]Formatter{}

var aliases = map[string]string{
	"verbose":         "console",
	"console-verbose": "console",
	"lite":            "console-lite",
	"summary":         "console-lite",
}

func register(f Formatter) { formatters[f.Name()] = f }

func init() {
	register(ConsoleFormatter{})
	register(ConsoleVerboseFormatter{})
	register(CSVSummarizer{})
	register(CSVDetailed{})
	register(JSONFormatter{Pretty: true})
	register(HTMLFormatter{})
}

// GetFormatterByName returns the formatter registered under name or one of
// its aliases, or nil.
func GetFormatterByName(name string) Formatter {
	if target, ok := aliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// AvailableFormatterNames lists the registered formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases.
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted renders results and writes them to a timestamped file in
// the working directory.
func WriteFormatted(f Formatter, results *domain.ScenarioComparison, ext string) (string, error) {
	data, err := f.Format(results)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("patrimoine_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
