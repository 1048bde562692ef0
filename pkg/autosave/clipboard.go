package autosave

import "github.com/atotto/clipboard"

// Clipboard abstracts the system clipboard so the copy-autosave action is
// testable without a real display server.
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// SystemClipboard returns the real clipboard implementation.
func SystemClipboard() Clipboard {
	return systemClipboard{}
}
