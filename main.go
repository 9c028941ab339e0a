package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"sahelbus/internal/config"
	api "sahelbus/internal/http"
	"sahelbus/internal/http/handlers"
	"sahelbus/internal/ledger"
	"sahelbus/internal/repositories"
	"sahelbus/internal/services"
)

func main() {
	env := config.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	a := &handlers.API{
		Locks:     services.NewTripLocks(),
		Notifier:  services.LogNotifier{},
		JWTSecret: []byte(env.JWTSecret),
	}

	if env.DBDSN == "" {
		// Demo mode: everything in memory, seeded with the Nouakchott
		// fleet so the frontend has data to browse right away.
		ref := repositories.NewMemoryRef()
		if env.SeedDemo {
			if err := repositories.SeedDemo(ref); err != nil {
				log.Fatalf("Echec du chargement des donnees de demo: %v", err)
			}
		}
		a.Trips = repositories.MemoryTrips{Ref: ref}
		a.Buses = repositories.MemoryBuses{Ref: ref}
		a.Routes = repositories.MemoryRoutes{Ref: ref}
		a.Users = repositories.NewMemoryUsers()
		a.Payments = repositories.NewMemoryPayments()
		a.Ledger = ledger.NewMemoryStore()
		log.Println("DB_DSN absent, demarrage en mode demo (stockage memoire)")
	} else {
		db, err := config.OpenDB(env.DBDSN)
		if err != nil {
			log.Fatalf("Echec de connexion MySQL: %v", err)
		}
		defer db.Close()

		if err := repositories.EnsureSchema(db); err != nil {
			log.Fatalf("Echec de preparation du schema: %v", err)
		}
		if err := ledger.EnsureSchema(db); err != nil {
			log.Fatalf("Echec de preparation du schema reservations: %v", err)
		}

		a.DB = db
		a.Trips = repositories.TripRepo{DB: db}
		a.Buses = repositories.BusRepo{DB: db}
		a.Routes = repositories.RouteRepo{DB: db}
		a.Users = repositories.UserRepo{DB: db}
		a.Payments = repositories.PaymentRepo{DB: db}
		a.Ledger = ledger.NewMySQLStore(db)
	}

	r := api.NewRouter(a)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Serveur en ecoute sur http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Echec du demarrage du serveur: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Arret du serveur...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Echec de l'arret du serveur: %v", err)
	}

	log.Println("Serveur arrete proprement.")
}
