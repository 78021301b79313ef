package service

import (
	"fmt"
	"net/url"

	"github.com/skip2/go-qrcode"
)

// DefaultQRGenerator encodes a link to the restaurant page of the storefront.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Link(restaurantID string) string {
	return fmt.Sprintf("%s/restaurant/%s", g.BaseURL, url.PathEscape(restaurantID))
}

func (g DefaultQRGenerator) Generate(restaurantID string) ([]byte, error) {
	return qrcode.Encode(g.Link(restaurantID), qrcode.Medium, 256)
}
