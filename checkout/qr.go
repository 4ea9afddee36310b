package checkout

import "github.com/skip2/go-qrcode"

// qrEncode renders a link as a PNG QR code sized for phone scanning.
func qrEncode(link string) ([]byte, error) {
	return qrcode.Encode(link, qrcode.Medium, 256)
}
