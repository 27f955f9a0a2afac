// Package testutil provides fixture documents for testing scriptscan components
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Marker is the script marker used by fixture documents
const Marker = "// --- SIMPLIFIED WORKING JAVASCRIPT --- //"

// ScriptDocument wraps script lines in an HTML page, after an unrelated
// leading script block. The marker is the first line of the marked block.
func ScriptDocument(lines ...string) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html>\n")
	sb.WriteString("<head>\n")
	sb.WriteString("<script>\n")
	sb.WriteString("window.dataLayer = { events: [] };\n")
	sb.WriteString("</script>\n")
	sb.WriteString("</head>\n")
	sb.WriteString("<body>\n")
	sb.WriteString("<script>\n")
	sb.WriteString("    " + Marker + "\n")
	for _, l := range lines {
		sb.WriteString(l + "\n")
	}
	sb.WriteString("</script>\n")
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")
	return sb.String()
}

// ScriptStartLine is the document line of the marked block's opening tag in ScriptDocument
const ScriptStartLine = 9

// BalancedScript is a small script block whose braces balance
func BalancedScript() []string {
	return []string{
		"    function startTimer() {",
		"        if (!running) {",
		"            running = true;",
		"        }",
		"    }",
		"",
		"    const timerState = {",
		"        seconds: 0",
		"    };",
	}
}

// UnbalancedScript leaves two blocks open
func UnbalancedScript() []string {
	return []string{
		"    function startTimer() {",
		"        if (!running) {",
		"            running = true;",
		"    }",
		"",
		"    document.addEventListener('DOMContentLoaded', function() {",
		"        startTimer();",
	}
}

// TimerDocument is a page carrying the timer template, its elements and wiring
func TimerDocument() string {
	return `<!DOCTYPE html>
<html>
<body>
<template id="template-timer">
  <div id="timer-display">05:00</div>
  <div id="timer-status">Ready</div>
  <select id="timer-duration"></select>
  <input id="timer-sound" type="checkbox">
  <svg id="progress-ring"></svg>
  <button id="timer-start-btn">Start</button>
  <button id="timer-pause-btn">Pause</button>
  <button id="timer-reset-btn">Reset</button>
</template>
<script>
    const pageLogic = {
        'timer': attachTimerLogic
    };
    function attachTimerLogic() {
        console.log('timer attached');
        attachTimerEventListeners();
    }
    function attachTimerEventListeners() {}
    function startTimer() { console.log("Timer started") }
    function pauseTimer() {}
    function resetTimer() {}
    function updateDisplay() {}
</script>
</body>
</html>
`
}

// WriteDocument writes content to name inside a temp dir and returns its path
func WriteDocument(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
