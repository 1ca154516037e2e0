package internal

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := logger
	logger = log.New(&buf, "", 0)
	t.Cleanup(func() {
		logger = old
		SetLogLevel(LogLevelInfo)
	})
	return &buf
}

func TestLogLevels(t *testing.T) {
	buf := captureLog(t)
	SetLogLevel(LogLevelInfo)

	LogError("e %d", 1)
	LogWarn("w %d", 2)
	LogInfo("i %d", 3)
	LogDebug("d %d", 4)

	out := buf.String()
	for _, want := range []string{"[ERROR] e 1", "[WARN] w 2", "[INFO] i 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "[DEBUG]") {
		t.Errorf("debug line emitted at info level:\n%s", out)
	}
}

func TestSetVerbose(t *testing.T) {
	buf := captureLog(t)

	SetVerbose(true)
	LogDebug("visible")
	if !strings.Contains(buf.String(), "[DEBUG] visible") {
		t.Errorf("debug line missing in verbose mode:\n%s", buf.String())
	}

	buf.Reset()
	SetVerbose(false)
	LogDebug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug line emitted after verbose off:\n%s", buf.String())
	}
}

func TestErrorLevelSuppressesWarnings(t *testing.T) {
	buf := captureLog(t)
	SetLogLevel(LogLevelError)

	LogWarn("quiet")
	LogError("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("warning emitted at error level:\n%s", out)
	}
	if !strings.Contains(out, "loud") {
		t.Errorf("error line missing:\n%s", out)
	}
}
