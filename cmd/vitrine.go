package main

import (
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/indieinfra/vitrine/asset"
	"github.com/indieinfra/vitrine/auth"
	"github.com/indieinfra/vitrine/catalog"
	"github.com/indieinfra/vitrine/config"
	"github.com/indieinfra/vitrine/mail"
	"github.com/indieinfra/vitrine/server"
	"github.com/indieinfra/vitrine/server/state"
	"github.com/indieinfra/vitrine/storage/blob/factory"
	"github.com/indieinfra/vitrine/storage/record"
)

func main() {
	log.SetPrefix("vitrine: ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile | log.Lmsgprefix)

	configFile := flag.String("config", "config.yml", "Path to the configuration file (i.e., /etc/vitrine.yaml)")
	flag.Parse()

	if len(strings.Trim(*configFile, " ")) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	log.Println("loading configuration...")
	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("could not load configuration: %v", err)
	}

	log.Println("opening record store...")
	records, err := record.NewStore(&cfg.Record)
	if err != nil {
		log.Fatalf("could not open record store: %v", err)
	}
	defer records.Close()

	log.Println("opening blob store...")
	blobStore, err := factory.Create(&cfg.Blob)
	if err != nil {
		log.Fatalf("could not open blob store: %v", err)
	}

	sender, err := mail.Create(&cfg.Mail)
	if err != nil {
		log.Fatalf("could not build mail sender: %v", err)
	}

	coord := asset.NewCoordinator(blobStore)
	st := &state.VitrineState{
		Cfg:         cfg,
		Restaurants: catalog.NewRestaurantService(coord, records),
		Photography: catalog.NewPhotographyService(coord, records),
		Videos:      catalog.NewVideoService(records),
		Admins: auth.NewService(records, sender, cfg.Auth.JwtSecret,
			time.Duration(cfg.Auth.TokenTtlMins)*time.Minute,
			cfg.Mail.SupportAddress, cfg.Server.PublicUrl),
	}

	log.Println("starting http server...")
	if err := server.StartServer(st); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
