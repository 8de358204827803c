package simulator

import (
	"encoding/base64"
	"net/http"
)

// readable reports whether a base64 image is one the simulator can "read":
// JPEG and PNG pass, anything else (GIF, garbage) is unreadable.
func readable(imageBase64 string) bool {
	raw, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil || len(raw) == 0 {
		return false
	}
	switch http.DetectContentType(raw) {
	case "image/jpeg", "image/png":
		return true
	default:
		return false
	}
}
