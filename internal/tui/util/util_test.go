package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Clamp(-3, 0, 5))
	assert.Equal(t, 5, Clamp(9, 0, 5))
	assert.Equal(t, 3, Clamp(3, 5, 0))
}

func TestCmdHandler(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hello", CmdHandler("hello")())
}

func TestCopyToClipboard(t *testing.T) {
	prev := clipboardWrite
	defer func() { clipboardWrite = prev }()

	var got string
	clipboardWrite = func(s string) error {
		got = s
		return nil
	}

	msg := CopyToClipboard("Button", "share me")()
	assert.Equal(t, ClipboardMsg{What: "Button"}, msg)
	assert.Equal(t, "share me", got)

	clipboardWrite = func(string) error { return errors.New("no clipboard") }
	msg = CopyToClipboard("Card", "x")()
	assert.EqualError(t, msg.(ClipboardMsg).Err, "no clipboard")
}
