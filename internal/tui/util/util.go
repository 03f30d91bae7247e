package util

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

func CmdHandler(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

func Clamp(v, low, high int) int {
	if high < low {
		low, high = high, low
	}
	return min(high, max(low, v))
}

// ClipboardMsg reports the outcome of CopyToClipboard.
type ClipboardMsg struct {
	What string
	Err  error
}

// clipboardWrite is swapped in tests, where no clipboard is available.
var clipboardWrite = clipboard.WriteAll

// CopyToClipboard writes text to the system clipboard off the UI goroutine.
func CopyToClipboard(what, text string) tea.Cmd {
	return func() tea.Msg {
		return ClipboardMsg{What: what, Err: clipboardWrite(text)}
	}
}

// WriteClipboard copies text synchronously, for non-interactive commands.
func WriteClipboard(text string) error {
	return clipboardWrite(text)
}
