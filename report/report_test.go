package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/domino14/scramblebias/bias"
	"github.com/domino14/scramblebias/config"
)

func sampleRows() ([]bias.Row, bias.Convergence) {
	e := bias.NewEstimator()
	e.SetLogger(zerolog.Nop())
	e.SetMaxBit(4)
	rows := bias.Table(e, 0, 17)
	return rows, bias.AnalyzeConvergence(rows, 95)
}

func TestWriteText(t *testing.T) {
	rows, conv := sampleRows()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Options{Format: config.FormatText, Reference: true}, rows, conv))
	out := buf.String()
	lines := strings.Split(out, "\n")

	assert.Equal(t, []string{"bit", "population", "bias", "reference"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"3", "4", "0.375000", "0.375000"}, strings.Fields(lines[4]))
	// Past the ceiling only the reference is shown.
	assert.Equal(t, []string{"15", "16,384", "-", "0.006233"}, strings.Fields(lines[16]))
	assert.Equal(t, []string{"16", "32,768", "-", "0.004407", "(est.)"}, strings.Fields(lines[17]))
	assert.Contains(t, out, "ratio of consecutive bits: mean")
	assert.Contains(t, out, "(95%)")
}

func TestWriteTextNoReference(t *testing.T) {
	rows, conv := sampleRows()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Options{}, rows[:3], conv))
	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, []string{"bit", "population", "bias"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"2", "2", "0.500000"}, strings.Fields(lines[3]))
}

func TestWriteTextNoRatios(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Options{Format: config.FormatText}, nil, bias.Convergence{}))
	assert.NotContains(t, buf.String(), "ratio")
}

func TestWriteJSON(t *testing.T) {
	rows, conv := sampleRows()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Options{Format: config.FormatJSON}, rows, conv))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Rows, 18)
	assert.Equal(t, 0.273437, doc.Rows[4].Value)
	assert.True(t, doc.Rows[4].Computed)
	assert.False(t, doc.Rows[5].Computed)
	assert.NotEmpty(t, doc.Rows[5].Message)
	assert.True(t, doc.Rows[17].Extrapolated)
	assert.Equal(t, conv.Last, doc.Convergence.Last)
}

func TestWriteYAML(t *testing.T) {
	rows, conv := sampleRows()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Options{Format: config.FormatYAML}, rows, conv))

	var doc Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Rows, 18)
	assert.Equal(t, int64(16384), doc.Rows[15].Population)
	require.NotNil(t, doc.Rows[15].Reference)
	assert.Equal(t, 0.006233, *doc.Rows[15].Reference)
	assert.Len(t, doc.Convergence.Ratios, len(conv.Ratios))
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, Options{Format: "csv"}, nil, bias.Convergence{})
	assert.ErrorIs(t, err, config.ErrUnknownFormat)
}
