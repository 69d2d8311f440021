// Package server wires the HTTP surface: public reads, admin-gated
// mutations, the account endpoints, and the static file mount for the
// filesystem blob strategy.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/indieinfra/vitrine/server/handler/admin"
	"github.com/indieinfra/vitrine/server/handler/photography"
	"github.com/indieinfra/vitrine/server/handler/restaurant"
	"github.com/indieinfra/vitrine/server/handler/video"
	"github.com/indieinfra/vitrine/server/middleware"
	"github.com/indieinfra/vitrine/server/state"
)

const shutdownGrace = 10 * time.Second

// NewMux builds the full route table.
func NewMux(st *state.VitrineState) *http.ServeMux {
	mux := http.NewServeMux()

	gated := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAdmin(st, h)
	}

	mux.HandleFunc("GET /api/restaurants", restaurant.HandleList(st))
	mux.HandleFunc("GET /api/restaurants/{id}", restaurant.HandleGet(st))
	mux.HandleFunc("GET /api/gallery/{slug}", restaurant.HandleGallery(st))
	mux.Handle("POST /api/restaurants", gated(restaurant.HandleCreate(st)))
	mux.Handle("PUT /api/restaurants/{id}", gated(restaurant.HandleUpdate(st)))
	mux.Handle("DELETE /api/restaurants/{id}", gated(restaurant.HandleDelete(st)))
	mux.Handle("POST /api/restaurants/{id}/photos", gated(restaurant.HandleAddPhotos(st)))
	mux.Handle("PUT /api/restaurants/{id}/photos/{photoId}", gated(restaurant.HandleReplacePhoto(st)))
	mux.Handle("DELETE /api/restaurants/{id}/photos/{photoId}", gated(restaurant.HandleDeletePhoto(st)))

	mux.HandleFunc("GET /api/photography", photography.HandleList(st))
	mux.Handle("POST /api/photography", gated(photography.HandleUpload(st)))
	mux.Handle("DELETE /api/photography/{id}", gated(photography.HandleDelete(st)))

	mux.HandleFunc("GET /api/videos", video.HandleList(st))
	mux.Handle("POST /api/videos", gated(video.HandleCreate(st)))
	mux.Handle("DELETE /api/videos/{id}", gated(video.HandleDelete(st)))

	mux.HandleFunc("POST /api/admin/register", admin.HandleRegister(st))
	mux.HandleFunc("POST /api/admin/login", admin.HandleLogin(st))
	mux.HandleFunc("GET /api/admin/approval", admin.HandleApproval(st))
	mux.HandleFunc("POST /api/admin/password/forgot", admin.HandleForgotPassword(st))
	mux.HandleFunc("POST /api/admin/password/reset", admin.HandleResetPassword(st))

	// The filesystem strategy serves its own files; other strategies have an
	// external public URL.
	if st.Cfg.Blob.Strategy == "filesystem" {
		prefix := "/" + strings.Trim(st.Cfg.Blob.Filesystem.PublicUrl, "/") + "/"
		fs := http.FileServer(http.Dir(st.Cfg.Blob.Filesystem.Path))
		mux.Handle("GET "+prefix, http.StripPrefix(prefix, fs))
	}

	return mux
}

// StartServer serves requests until SIGINT or SIGTERM, then drains in-flight
// requests before returning.
func StartServer(st *state.VitrineState) error {
	bindAddress := fmt.Sprintf("%v:%v", st.Cfg.Server.Address, st.Cfg.Server.Port)
	srv := &http.Server{
		Addr:    bindAddress,
		Handler: NewMux(st),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("serving http requests on %q", bindAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Printf("received %v, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
