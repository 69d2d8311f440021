// Package restaurant exposes the restaurant catalog over HTTP: the public
// read endpoints and the admin-gated mutations that move cover and gallery
// images through the asset coordinator.
package restaurant

import (
	"fmt"
	"net/http"

	"github.com/indieinfra/vitrine/asset"
	"github.com/indieinfra/vitrine/server/handler/common"
	"github.com/indieinfra/vitrine/server/resp"
	"github.com/indieinfra/vitrine/server/state"
	"github.com/indieinfra/vitrine/server/util"
)

// MaxGalleryBatch bounds how many photos one request may attach.
const MaxGalleryBatch = 10

func HandleCreate(st *state.VitrineState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, ok := util.ParseImageForm(w, r, int64(st.Cfg.Server.Limits.MaxMultipartMem))
		if !ok {
			return
		}
		defer form.Close()

		cover, ok := form.Upload(w, "cover", int64(st.Cfg.Server.Limits.MaxFileSize))
		if !ok {
			return
		}

		created, err := st.Restaurants.Create(r.Context(), form.Value("name"), cover)
		if err != nil {
			common.LogAndWriteError(w, r, "create restaurant", err)
			return
		}

		resp.WriteCreated(w, fmt.Sprintf("/api/restaurants/%d", created.ID), created)
	}
}

func HandleList(st *state.VitrineState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurants, err := st.Restaurants.List(r.Context())
		if err != nil {
			common.LogAndWriteError(w, r, "list restaurants", err)
			return
		}

		resp.WriteOK(w, restaurants)
	}
}

func HandleGet(st *state.VitrineState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := common.PathID(w, r, "id")
		if !ok {
			return
		}

		restaurant, err := st.Restaurants.Get(r.Context(), id)
		if err != nil {
			common.LogAndWriteError(w, r, "get restaurant", err)
			return
		}

		resp.WriteOK(w, restaurant)
	}
}

// HandleUpdate accepts a new name, a new cover, or both in one multipart
// request.
func HandleUpdate(st *state.VitrineState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := common.PathID(w, r, "id")
		if !ok {
			return
		}

		form, ok := util.ParseImageForm(w, r, int64(st.Cfg.Server.Limits.MaxMultipartMem))
		if !ok {
			return
		}
		defer form.Close()

		var cover *asset.Upload
		if form.HasFile("cover") {
			up, ok := form.Upload(w, "cover", int64(st.Cfg.Server.Limits.MaxFileSize))
			if !ok {
				return
			}
			cover = &up
		}

		name := form.Value("name")
		if name == "" && cover == nil {
			resp.WriteInvalidRequest(w, "nothing to update: provide a name or a cover file")
			return
		}

		updated, err := st.Restaurants.Update(r.Context(), id, name, cover)
		if err != nil {
			common.LogAndWriteError(w, r, "update restaurant", err)
			return
		}

		resp.WriteOK(w, updated)
	}
}

func HandleDelete(st *state.VitrineState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := common.PathID(w, r, "id")
		if !ok {
			return
		}

		if err := st.Restaurants.Delete(r.Context(), id); err != nil {
			common.LogAndWriteError(w, r, "delete restaurant", err)
			return
		}

		resp.WriteNoContent(w)
	}
}

func HandleAddPhotos(st *state.VitrineState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := common.PathID(w, r, "id")
		if !ok {
			return
		}

		form, ok := util.ParseImageForm(w, r, int64(st.Cfg.Server.Limits.MaxMultipartMem))
		if !ok {
			return
		}
		defer form.Close()

		uploads, ok := form.Uploads(w, "photos", MaxGalleryBatch, int64(st.Cfg.Server.Limits.MaxFileSize))
		if !ok {
			return
		}

		photos, err := st.Restaurants.AddGalleryPhotos(r.Context(), id, uploads)
		if err != nil {
			common.LogAndWriteError(w, r, "add gallery photos", err)
			return
		}

		resp.WriteCreated(w, "", photos)
	}
}

func HandleReplacePhoto(st *state.VitrineState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := common.PathID(w, r, "id")
		if !ok {
			return
		}
		photoID, ok := common.PathID(w, r, "photoId")
		if !ok {
			return
		}

		form, ok := util.ParseImageForm(w, r, int64(st.Cfg.Server.Limits.MaxMultipartMem))
		if !ok {
			return
		}
		defer form.Close()

		up, ok := form.Upload(w, "photo", int64(st.Cfg.Server.Limits.MaxFileSize))
		if !ok {
			return
		}

		photo, err := st.Restaurants.ReplaceGalleryPhoto(r.Context(), id, photoID, up)
		if err != nil {
			common.LogAndWriteError(w, r, "replace gallery photo", err)
			return
		}

		resp.WriteOK(w, photo)
	}
}

func HandleDeletePhoto(st *state.VitrineState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := common.PathID(w, r, "id")
		if !ok {
			return
		}
		photoID, ok := common.PathID(w, r, "photoId")
		if !ok {
			return
		}

		if err := st.Restaurants.DeleteGalleryPhoto(r.Context(), id, photoID); err != nil {
			common.LogAndWriteError(w, r, "delete gallery photo", err)
			return
		}

		resp.WriteNoContent(w)
	}
}

// HandleGallery serves a restaurant's photos by slug for the public site.
func HandleGallery(st *state.VitrineState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		photos, err := st.Restaurants.GalleryBySlug(r.Context(), r.PathValue("slug"))
		if err != nil {
			common.LogAndWriteError(w, r, "get gallery", err)
			return
		}

		resp.WriteOK(w, photos)
	}
}
