// Package fingerprint derives a pseudo-identity token from client environment
// attributes. The token is a deduplication signal, explicitly not an
// authentication credential: identical attributes always produce the same
// token, and nothing prevents a client from reporting different attributes.
package fingerprint

import (
	"encoding/base64"
	"strconv"
	"strings"
)

const tokenLength = 16

type ClientAttributes struct {
	UserAgent    string `json:"userAgent"`
	ScreenWidth  int    `json:"screenWidth"`
	ScreenHeight int    `json:"screenHeight"`
	Locale       string `json:"locale"`
}

// Derive computes the identity token for the given attributes. It never fails.
func Derive(attrs ClientAttributes) string {
	raw := strings.Join([]string{
		attrs.UserAgent,
		strconv.Itoa(attrs.ScreenWidth),
		strconv.Itoa(attrs.ScreenHeight),
		attrs.Locale,
	}, "|")

	encoded := base64.StdEncoding.EncodeToString([]byte(raw))
	if len(encoded) > tokenLength {
		return encoded[:tokenLength]
	}
	return encoded
}
