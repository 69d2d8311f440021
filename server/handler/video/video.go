// Package video exposes the video link collection, the one record-only
// resource with no file side.
package video

import (
	"fmt"
	"net/http"

	"github.com/indieinfra/vitrine/server/handler/common"
	"github.com/indieinfra/vitrine/server/resp"
	"github.com/indieinfra/vitrine/server/state"
	"github.com/indieinfra/vitrine/server/util"
)

type createRequest struct {
	Title    string `json:"title"`
	VideoUrl string `json:"videoUrl"`
}

func HandleCreate(st *state.VitrineState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if !util.DecodeJSON(w, r, &req) {
			return
		}

		link, err := st.Videos.Create(r.Context(), req.Title, req.VideoUrl)
		if err != nil {
			common.LogAndWriteError(w, r, "create video link", err)
			return
		}

		resp.WriteCreated(w, fmt.Sprintf("/api/videos/%d", link.ID), link)
	}
}

func HandleList(st *state.VitrineState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		links, err := st.Videos.List(r.Context())
		if err != nil {
			common.LogAndWriteError(w, r, "list video links", err)
			return
		}

		resp.WriteOK(w, links)
	}
}

func HandleDelete(st *state.VitrineState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := common.PathID(w, r, "id")
		if !ok {
			return
		}

		if err := st.Videos.Delete(r.Context(), id); err != nil {
			common.LogAndWriteError(w, r, "delete video link", err)
			return
		}

		resp.WriteNoContent(w)
	}
}
