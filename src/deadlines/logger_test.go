package deadlines

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestInfof_NoDoubleFormattingWithPercent(t *testing.T) {
	// Swap the base logger to capture output
	var buf bytes.Buffer
	saved := baseLogger
	baseLogger = log.New(&buf, "", 0)
	defer func() { baseLogger = saved }()

	SetLogLevel("info")

	msg := "loaded 24 records from uocava_deadlines.csv (100% parsed) span=09/06/2024..11/15/2024"
	Infof(msg)

	out := buf.String()
	if !strings.Contains(out, "(100% parsed)") {
		t.Fatalf("log output missing expected percent segment: %s", out)
	}
	if strings.Contains(out, "%!p(MISSING)") || strings.Contains(out, "%!(NOVERB)") {
		t.Fatalf("log output still shows fmt artifact: %s", out)
	}
}

func TestDebugfSuppressedAtInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	saved := baseLogger
	baseLogger = log.New(&buf, "", 0)
	defer func() { baseLogger = saved }()

	SetLogLevel("info")
	Debugf("hidden %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("debug output leaked at info level: %s", buf.String())
	}

	SetLogLevel("debug")
	Debugf("visible %d", 2)
	if !strings.Contains(buf.String(), "visible 2") {
		t.Fatalf("debug output missing at debug level: %s", buf.String())
	}
	SetLogLevel("info")
}

func TestSetLogLevelUnknown(t *testing.T) {
	if SetLogLevel("chatty") {
		t.Fatalf("unknown level should be rejected")
	}
	if !SetLogLevel("warn") {
		t.Fatalf("warn should be accepted")
	}
	SetLogLevel("info")
}
