package state

import (
	"github.com/indieinfra/vitrine/auth"
	"github.com/indieinfra/vitrine/catalog"
	"github.com/indieinfra/vitrine/config"
)

// VitrineState bundles the configuration and services the handlers depend on.
type VitrineState struct {
	Cfg         *config.Config
	Restaurants *catalog.RestaurantService
	Photography *catalog.PhotographyService
	Videos      *catalog.VideoService
	Admins      *auth.Service
}
