package output

import (
	"bytes"
	"strings"
	"testing"
)

// captureOutput captures output during test execution
func captureOutput(f func()) string {
	var buf bytes.Buffer
	SetWriter(&buf)
	defer SetWriter(nil)

	f()

	return buf.String()
}

func TestSuccess(t *testing.T) {
	output := captureOutput(func() {
		Success("Test message")
	})

	if !strings.Contains(output, "✈️") {
		t.Error("Success output should contain plane emoji")
	}
	if !strings.Contains(output, "Test message") {
		t.Error("Success output should contain the message")
	}
}

func TestError(t *testing.T) {
	output := captureOutput(func() {
		Error("Error message")
	})

	if !strings.Contains(output, "❌") {
		t.Error("Error output should contain X emoji")
	}
	if !strings.Contains(output, "Error message") {
		t.Error("Error output should contain the message")
	}
}

func TestWarn(t *testing.T) {
	output := captureOutput(func() {
		Warn("careful")
	})

	if !strings.Contains(output, "careful") {
		t.Error("Warn output should contain the message")
	}
}

func TestInfo(t *testing.T) {
	output := captureOutput(func() {
		Info("Info message")
	})

	if !strings.Contains(output, "ℹ️") {
		t.Error("Info output should contain info emoji")
	}
	if !strings.Contains(output, "Info message") {
		t.Error("Info output should contain the message")
	}
}

func TestStep(t *testing.T) {
	output := captureOutput(func() {
		Step("Step message")
	})

	if !strings.Contains(output, "   ") {
		t.Error("Step output should contain indentation")
	}
	if !strings.Contains(output, "Step message") {
		t.Error("Step output should contain the message")
	}
}

func TestBanner(t *testing.T) {
	output := captureOutput(Banner)

	if !strings.Contains(output, "Welcome to the") {
		t.Error("Banner should contain the welcome line")
	}
	if !strings.Contains(output, "Flugzeug") {
		t.Error("Banner should name the generator")
	}
}

func TestVerbose(t *testing.T) {
	// Test with verbose mode off (default)
	output := captureOutput(func() {
		Verbose("Debug message")
	})

	if output != "" {
		t.Error("Verbose output should be empty when verbose mode is off")
	}

	// Test with verbose mode on
	SetVerbose(true)
	defer SetVerbose(false)
	output = captureOutput(func() {
		Verbose("Debug message")
	})

	if !strings.Contains(output, "🔍") {
		t.Error("Verbose output should contain magnifying glass emoji when enabled")
	}
	if !strings.Contains(output, "Debug message") {
		t.Error("Verbose output should contain the message when enabled")
	}
}
