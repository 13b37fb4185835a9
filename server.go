package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ukane-philemon/students/internal/admin"
	"github.com/ukane-philemon/students/internal/api"
	"github.com/ukane-philemon/students/internal/config"
	"github.com/ukane-philemon/students/internal/db/memory"
	"github.com/ukane-philemon/students/internal/db/mongodb"
	"github.com/ukane-philemon/students/internal/jwt"
	"github.com/ukane-philemon/students/internal/student"
)

const shutdownTimeout = 10 * time.Second

// store is the persistence backend used by the server.
type store interface {
	student.Repository
	admin.Repository
}

func main() {
	var isDevMode, inMemory bool
	flag.BoolVar(&isDevMode, "dev", false, "Run server in development mode")
	flag.BoolVar(&inMemory, "memory", false, "Keep records in memory instead of mongodb")
	flag.Parse()

	cfg, err := config.Load(isDevMode, inMemory)
	if err != nil {
		log.Fatalf("config.Load error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var db store
	shutdownDB := func(context.Context) error { return nil }
	if cfg.InMemory {
		log.Println("Using in-memory store, records will be lost on shutdown...")
		db = memory.New()
	} else {
		mdb, err := mongodb.New(ctx, cfg.DBName, cfg.DBURL)
		if err != nil {
			log.Fatalf("mongodb.New error: %v", err)
		}
		db, shutdownDB = mdb, mdb.Shutdown
	}

	jwtManager, err := jwt.NewJWTManager([]byte(cfg.JWTSecret))
	if err != nil {
		log.Fatalf("jwt.NewJWTManager error: %v", err)
	}

	admins := admin.NewService(db, jwtManager)
	if cfg.AdminUsername != "" {
		err = admins.EnsureAccount(ctx, cfg.AdminUsername, cfg.AdminPassword)
		if err != nil {
			log.Fatalf("admins.EnsureAccount error: %v", err)
		}
	}

	server := api.NewServer(student.NewService(db), admins, jwtManager, cfg.RateLimit)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	listener, err := net.Listen("tcp", httpServer.Addr)
	if err != nil {
		log.Fatalf("net.Listen error: %v", err)
	}

	// Ensure graceful shutdown by capturing SIGINT and SIGTERM signals.
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	log.Printf("Student service has started successfully, listening on port %s", cfg.Port)

	err = serve(httpServer, listener, shutdownChan, shutdownDB)
	if err != nil {
		log.Printf("Student service shutdown error: %v", err)
	} else {
		log.Println("Student service shutdown successfully...")
	}
}

// serve runs httpServer on listener until stop fires. The store is shut down
// only after every in-flight request has finished or shutdownTimeout expired.
func serve(httpServer *http.Server, listener net.Listener, stop <-chan os.Signal, shutdownDB func(context.Context) error) error {
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-stop

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("httpServer.Shutdown error: %v", err)
		}
	}()

	err := httpServer.Serve(listener)
	if errors.Is(err, http.ErrServerClosed) {
		// Serve returns as soon as Shutdown starts, not when it is done.
		<-shutdownDone
		err = nil
	}

	dbShutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if dbErr := shutdownDB(dbShutdownCtx); dbErr != nil {
		log.Printf("db.Shutdown error: %v", dbErr)
	}

	return err
}
