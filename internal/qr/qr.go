// Package qr builds the join link handed out at the venue and renders it as
// a scannable image.
package qr

import (
	"errors"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// JoinURL returns the registration link encoded into the venue QR code:
// the application origin with the join-intent flag set.
func JoinURL(publicURL string) string {
	return strings.TrimRight(publicURL, "/") + "/?join=true"
}

// JoinPNG renders the join link as a size x size PNG.
func JoinPNG(publicURL string, size int) ([]byte, error) {
	if strings.TrimSpace(publicURL) == "" {
		return nil, errors.New("qr: public url required")
	}
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(JoinURL(publicURL), qrcode.Medium, size)
}
