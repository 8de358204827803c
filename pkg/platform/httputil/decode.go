package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// MaxBodyBytes bounds request bodies. Document mutations carry three base64
// images, so the limit is generous.
const MaxBodyBytes = 32 << 20

// DecodeJSON decodes a JSON request body into the target type.
func DecodeJSON[T any](w http.ResponseWriter, r *http.Request) (*T, error) {
	var req T
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return nil, fmt.Errorf("decode request body: %w", err)
	}
	return &req, nil
}
