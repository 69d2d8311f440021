package util

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/indieinfra/vitrine/server/resp"
)

// Bound JSON bodies well below the upload limit; these carry form fields only.
const maxJsonBody = 64 << 10

// DecodeJSON reads a JSON request body into dst, writing the error response
// on failure.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !RequireJsonContentType(w, r) {
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxJsonBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		resp.WriteInvalidRequest(w, fmt.Errorf("could not parse request body: %w", err).Error())
		return false
	}

	return true
}
