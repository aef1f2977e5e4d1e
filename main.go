package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"mesai/config"
	"mesai/handlers"
	"mesai/identity"
	"mesai/middleware"
	"mesai/overtime"
	"mesai/state"
	"mesai/store"
)

func main() {
	cfg := config.Load()

	cal, err := config.LoadCalendar(cfg.CalendarPath)
	if err != nil {
		log.Fatal("Failed to load calendar:", err)
	}

	accounts, err := identity.LoadAccounts(cfg.AccountsPath)
	if err != nil {
		log.Fatal("Failed to load accounts:", err)
	}
	provider, err := identity.NewStaticProvider(accounts)
	if err != nil {
		log.Fatal("Failed to initialize identity provider:", err)
	}

	middleware.SetJWTSecret(cfg.JWTSecret)

	var st store.Store
	switch cfg.StoreBackend {
	case "memory":
		st = store.NewMemoryStore(store.SeedDocument())
	case "remote":
		if cfg.RemoteBaseURL == "" {
			log.Fatal("STORE_BACKEND=remote requires REMOTE_STORE_URL")
		}
		st = store.NewRemoteStore(cfg.RemoteBaseURL, cfg.RemoteFileName, provider, store.SeedDocument())
	default:
		log.Fatalf("Unknown STORE_BACKEND %q (want memory or remote)", cfg.StoreBackend)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	container, err := state.Open(ctx, st)
	cancel()
	if err != nil {
		log.Fatal("Failed to load document:", err)
	}

	classifier := overtime.NewClassifier(cal.Holidays, time.Weekday(cal.WeekendDay))
	service := overtime.NewService(classifier)

	router := handlers.NewRouter(handlers.Deps{
		Config:    cfg,
		Calendar:  cal,
		Service:   service,
		Container: container,
		Provider:  provider,
	})

	log.Printf("Server starting on port %s (store: %s)", cfg.ServerPort, cfg.StoreBackend)
	if err := http.ListenAndServe(":"+cfg.ServerPort, router); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
