package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habitrack/internal/config"
	"github.com/julianstephens/habitrack/internal/constants"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// OutputFormat resolves the output format for a command. An explicit flag
// value wins over the configured default.
func (c *Context) OutputFormat(flag string) (string, error) {
	format := strings.ToLower(flag)
	if format == "" {
		format = strings.ToLower(c.Config.Output)
	}
	if format == "" {
		format = constants.DefaultOutput
	}
	if err := config.ValidateOutput(format); err != nil {
		return "", err
	}
	return format, nil
}

// WriteStructured encodes v as JSON or YAML
func WriteStructured(w io.Writer, format string, v interface{}) error {
	switch format {
	case constants.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case constants.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported structured output format: %s", format)
	}
}

// RenderTable renders rows under headers as a bordered table
func RenderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}
