package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/MikeBiancalana/calpick/internal/event"
	"github.com/MikeBiancalana/calpick/internal/export"
	"github.com/MikeBiancalana/calpick/internal/tui"
)

type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatTSV  OutputFormat = "tsv"
)

func parseFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "tsv":
		return FormatTSV, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: text, json, tsv)", s)
	}
}

// writeResult prints the outcome of a picker session.
func writeResult(w io.Writer, res tui.Result, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return json.NewEncoder(w).Encode(res)
	case FormatTSV:
		return formatResultTSV(w, res)
	default:
		if res.Cancelled || res.Formatted == "" {
			return nil
		}
		_, err := fmt.Fprintln(w, res.Formatted)
		return err
	}
}

func formatResultTSV(w io.Writer, res tui.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', tabwriter.TabIndent)
	fmt.Fprintln(tw, "VARIANT\tVALUE\tACCEPTED\tCANCELLED")
	value := strings.Join(res.Value.Values(), ",")
	if value == "" {
		value = "-"
	}
	fmt.Fprintf(tw, "%s\t%s\t%t\t%t\n", res.Value.Variant, value, res.Accepted, res.Cancelled)
	return tw.Flush()
}

// writeICSFile exports a selection to path.
func writeICSFile(path string, detail event.ChangeDetail, opts export.ICSOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create calendar file: %w", err)
	}
	if err := export.WriteICS(f, detail, opts); err != nil {
		f.Close()
		return fmt.Errorf("failed to export selection: %w", err)
	}
	return f.Close()
}
