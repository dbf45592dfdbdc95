package common

import (
	"fmt"
	"io"

	"github.com/skip2/go-qrcode"
)

// RenderQR draws text as a QR code using ANSI background colors.
func RenderQR(w io.Writer, text string, invert bool) error {
	qr, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("generating qr code: %w", err)
	}

	// Two spaces per module keep the code roughly square in a terminal.
	blackStr := "\033[40m  \033[0m"
	whiteStr := "\033[47m  \033[0m"
	if invert {
		blackStr, whiteStr = whiteStr, blackStr
	}

	for _, row := range qr.Bitmap() {
		for _, col := range row {
			if col {
				fmt.Fprint(w, blackStr)
			} else {
				fmt.Fprint(w, whiteStr)
			}
		}
		fmt.Fprintln(w, "\033[0m")
	}

	return nil
}
