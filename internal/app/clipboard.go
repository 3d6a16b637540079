package app

import (
	"context"

	"github.com/atotto/clipboard"
)

// Clipboard reads and writes the system clipboard.
type Clipboard interface {
	ReadText(ctx context.Context) (string, error)
	WriteText(ctx context.Context, text string) error
}

// SystemClipboard uses the platform clipboard utilities.
type SystemClipboard struct{}

func (SystemClipboard) ReadText(context.Context) (string, error) {
	if clipboard.Unsupported {
		return "", nil
	}
	return clipboard.ReadAll()
}

func (SystemClipboard) WriteText(_ context.Context, text string) error {
	return clipboard.WriteAll(text)
}
