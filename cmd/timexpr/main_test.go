package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithInputFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--input", "tomorrow"}, strings.NewReader(""), &stdout, &stderr)

	require.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "Time(")
}

func TestRunWithTrailingPositionalText(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--", "tomorrow", "at", "3pm"}, strings.NewReader(""), &stdout, &stderr)

	require.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "15:00:00")
}

func TestRunReadsStdinWhenNoInputOrArgs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(nil, strings.NewReader("thanksgiving\n"), &stdout, &stderr)

	require.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "11-28")
}

func TestRunMissingInputIsExitCode2(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(nil, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "no input")
}

func TestRunInvalidReferenceIsExitCode2(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--reference", "not-a-date", "--input", "today"}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "invalid --reference")
}

func TestRunExplainPrintsTable(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--explain", "--input", "tomorrow"}, strings.NewReader(""), &stdout, &stderr)

	require.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "entities")
}

func TestRunCustomReference(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--reference", "2020-01-01T00:00:00", "--input", "today"}, strings.NewReader(""), &stdout, &stderr)

	require.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "2020-01-01")
}
