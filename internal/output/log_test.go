package output

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T, cfg LogConfig) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetupLogging(cfg)
	logger.SetOutput(&buf)
	t.Cleanup(func() { SetupLogging(LogConfig{}) })
	return &buf
}

func TestSetupLogging_DefaultInfoLevel(t *testing.T) {
	buf := captureLog(t, LogConfig{})
	Debug("hidden")
	Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetupLogging_VerboseEnablesDebugLevel(t *testing.T) {
	buf := captureLog(t, LogConfig{Verbose: true})
	Debug("copying template", "file", "index.html")

	assert.Equal(t, log.DebugLevel, logger.GetLevel())
	assert.Contains(t, buf.String(), "copying template")
	assert.Contains(t, buf.String(), "file=index.html")
}

func TestSetupLogging_TimestampExplicitlyDisabled(t *testing.T) {
	buf := captureLog(t, LogConfig{Timestamps: BoolPtr(false)})
	Warn("hello")

	assert.NotRegexp(t, `^\d{1,2}:\d{2}:\d{2}`, strings.TrimSpace(buf.String()))
}

func TestSetupLogging_VerboseForcesTimestampsOn(t *testing.T) {
	buf := captureLog(t, LogConfig{Verbose: true, Timestamps: BoolPtr(false)})
	Error("boom")

	assert.Regexp(t, `^\d{2}:\d{2}:\d{2}`, strings.TrimSpace(buf.String()))
}

func TestPrintln(t *testing.T) {
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	t.Cleanup(func() {
		SetOutput(os.Stdout, os.Stderr)
		SetupLogging(LogConfig{})
	})

	Print("a")
	Println("b")

	assert.Equal(t, "ab\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestSetupLogging_KeepsRedirectedOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	t.Cleanup(func() {
		SetOutput(os.Stdout, os.Stderr)
		SetupLogging(LogConfig{})
	})

	SetupLogging(LogConfig{Timestamps: BoolPtr(false)})
	Warn("still captured")

	assert.Contains(t, errOut.String(), "still captured")
	assert.Empty(t, out.String())
}
