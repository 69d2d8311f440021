package common

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/indieinfra/vitrine/asset"
	"github.com/indieinfra/vitrine/server/resp"
	"github.com/indieinfra/vitrine/server/util"
)

// LogAndWriteError logs an error with request context and maps the asset
// error kinds to client responses.
func LogAndWriteError(w http.ResponseWriter, r *http.Request, op string, err error) {
	rl := util.FromContext(r.Context())
	if rl == nil {
		rl = util.WithRequest(log.Default(), r, "")
	}
	rl.Errorf("%s failed: %v", op, err)

	switch {
	case errors.Is(err, asset.ErrValidation):
		resp.WriteInvalidRequest(w, err.Error())
	case errors.Is(err, asset.ErrNotFound):
		resp.WriteNotFound(w, "not found")
	case errors.Is(err, asset.ErrConflict):
		resp.WriteConflict(w, err.Error())
	case errors.Is(err, asset.ErrUnauthorized):
		resp.WriteUnauthorized(w, err.Error())
	default:
		resp.WriteInternalServerError(w, fmt.Sprintf("%s failed", op))
	}
}

// PathID parses a numeric path segment, writing the error response when the
// value is not a positive integer.
func PathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		resp.WriteInvalidRequest(w, fmt.Sprintf("%q is not a valid %s", raw, name))
		return 0, false
	}

	return id, true
}
