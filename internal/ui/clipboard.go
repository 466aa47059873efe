package ui

import (
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/atotto/clipboard"
)

var (
	clipboardWrite                 = clipboard.WriteAll
	clipboardUnsupported           = func() bool { return clipboard.Unsupported }
	getenvFn                       = os.Getenv
	osc52Out             io.Writer = os.Stderr
)

// CopyToClipboard copies s through the system clipboard and falls back to the
// OSC52 escape sequence, which also works over SSH. It reports whether any
// method was attempted.
func CopyToClipboard(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	if !clipboardUnsupported() {
		err := clipboardWrite(s)
		if err == nil {
			return true
		}
		log.Printf("Clipboard write failed, falling back to OSC52: %v", err)
	}
	return writeOSC52(s)
}

// writeOSC52 wraps the sequence for tmux and screen when detected.
func writeOSC52(s string) bool {
	enc := base64.StdEncoding.EncodeToString([]byte(s))
	var seq string
	switch {
	case getenvFn("TMUX") != "":
		seq = fmt.Sprintf("\x1bPtmux;\x1b\x1b]52;c;%s\x07\x1b\\", enc)
	case getenvFn("STY") != "":
		seq = fmt.Sprintf("\x1bP\x1b]52;c;%s\x07\x1b\\", enc)
	default:
		seq = fmt.Sprintf("\x1b]52;c;%s\x07", enc)
	}
	if _, err := io.WriteString(osc52Out, seq); err != nil {
		log.Printf("OSC52 copy failed: %v", err)
		return false
	}
	return true
}
