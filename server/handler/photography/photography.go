// Package photography exposes the standalone photo collection over HTTP.
package photography

import (
	"fmt"
	"net/http"

	"github.com/indieinfra/vitrine/server/handler/common"
	"github.com/indieinfra/vitrine/server/resp"
	"github.com/indieinfra/vitrine/server/state"
	"github.com/indieinfra/vitrine/server/util"
)

func HandleUpload(st *state.VitrineState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, ok := util.ParseImageForm(w, r, int64(st.Cfg.Server.Limits.MaxMultipartMem))
		if !ok {
			return
		}
		defer form.Close()

		up, ok := form.Upload(w, "photo", int64(st.Cfg.Server.Limits.MaxFileSize))
		if !ok {
			return
		}

		photo, err := st.Photography.Create(r.Context(), up)
		if err != nil {
			common.LogAndWriteError(w, r, "upload photography photo", err)
			return
		}

		resp.WriteCreated(w, fmt.Sprintf("/api/photography/%d", photo.ID), photo)
	}
}

func HandleList(st *state.VitrineState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		photos, err := st.Photography.List(r.Context())
		if err != nil {
			common.LogAndWriteError(w, r, "list photography photos", err)
			return
		}

		resp.WriteOK(w, photos)
	}
}

func HandleDelete(st *state.VitrineState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := common.PathID(w, r, "id")
		if !ok {
			return
		}

		if err := st.Photography.Delete(r.Context(), id); err != nil {
			common.LogAndWriteError(w, r, "delete photography photo", err)
			return
		}

		resp.WriteNoContent(w)
	}
}
