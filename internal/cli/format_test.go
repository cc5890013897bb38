package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeBiancalana/calpick/internal/event"
	"github.com/MikeBiancalana/calpick/internal/export"
	"github.com/MikeBiancalana/calpick/internal/tui"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"tsv", FormatTSV, false},
		{"csv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteResult(t *testing.T) {
	res := tui.Result{
		Value:     event.ChangeDetail{Variant: "range", Start: "2024-02-10", End: "2024-02-20"},
		Formatted: "10/02/2024 – 20/02/2024",
		Accepted:  true,
	}

	var text bytes.Buffer
	require.NoError(t, writeResult(&text, res, FormatText))
	assert.Equal(t, "10/02/2024 – 20/02/2024\n", text.String())

	var js bytes.Buffer
	require.NoError(t, writeResult(&js, res, FormatJSON))
	assert.JSONEq(t, `{
		"value": {"variant": "range", "start": "2024-02-10", "end": "2024-02-20"},
		"formattedValue": "10/02/2024 – 20/02/2024",
		"accepted": true,
		"cancelled": false
	}`, js.String())

	var tsv bytes.Buffer
	require.NoError(t, writeResult(&tsv, res, FormatTSV))
	assert.Contains(t, tsv.String(), "VARIANT")
	assert.Contains(t, tsv.String(), "2024-02-10,2024-02-20")
}

func TestWriteResultCancelledText(t *testing.T) {
	var buf bytes.Buffer
	res := tui.Result{Value: event.ChangeDetail{Variant: "single", Date: "2024-02-10"}, Formatted: "10/02/2024", Cancelled: true}

	require.NoError(t, writeResult(&buf, res, FormatText))
	assert.Empty(t, buf.String())
}

func TestWriteICSFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pick.ics")

	err := writeICSFile(path, event.ChangeDetail{Variant: "single", Date: "2024-02-10"}, export.ICSOptions{Now: fixedNow()})
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "BEGIN:VCALENDAR")

	err = writeICSFile(path, event.ChangeDetail{Variant: "single"}, export.ICSOptions{})
	assert.ErrorContains(t, err, "nothing to export")
}
