package main

import (
	"context"
	"database/sql"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/google/uuid"

	"github.com/sfmontas/intitiative-planning/internal/auth"
	"github.com/sfmontas/intitiative-planning/internal/httpapi"
	"github.com/sfmontas/intitiative-planning/internal/obs"
)

var version = "0.3.0"

func main() {
	obs.Init()
	obs.InitBuildInfo(version, os.Getenv("IAM_COMMIT"))

	secret := os.Getenv("IAM_SECRET")
	if secret == "" {
		log.Fatal("IAM_SECRET is required")
	}

	// Postgres-backed store when a DSN is configured, seeded in-memory
	// store otherwise.
	var (
		db    *sql.DB
		store auth.CredentialStore
	)
	if dsn := os.Getenv("IAM_PG_DSN"); dsn != "" {
		var err error
		db, err = sql.Open("pgx", dsn)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
		store = auth.NewPGStore(db)
	} else {
		store = demoStore()
	}

	svc, err := auth.NewService(store,
		auth.WithSigningSecret([]byte(secret)),
		auth.WithAccessTTL(accessTTLFromEnv()),
	)
	if err != nil {
		log.Fatalf("auth service: %v", err)
	}

	probe := httpapi.ReadyProbe{DB: db}
	api := httpapi.New(probe, svc, version)

	srv := &http.Server{
		Addr:              addrFromEnv("IAM_ADDR", ":8080"),
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting iam-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// Optional gRPC health listener for orchestrators probing over gRPC.
	var grpcHealth *httpapi.GRPCHealth
	if addr := os.Getenv("IAM_GRPC_ADDR"); addr != "" {
		lis, err := net.Listen("tcp", addr)
		if err != nil {
			log.Fatalf("grpc listen: %v", err)
		}
		grpcHealth = httpapi.NewGRPCHealth(probe)
		go func() {
			if err := grpcHealth.Serve(lis); err != nil {
				log.Printf("grpc health: %v", err)
			}
		}()
		log.Printf("gRPC health on %s", addr)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	if grpcHealth != nil {
		grpcHealth.Stop()
	}
	if db != nil {
		_ = db.Close()
	}
	log.Println("Stopped")
}

// demoStore seeds the in-memory store with two demo identities. When no demo
// password is configured a random one is used, which keeps the accounts
// unusable until IAM_DEMO_PASSWORD is set.
func demoStore() *auth.MemoryStore {
	password := os.Getenv("IAM_DEMO_PASSWORD")
	if password == "" {
		password = uuid.NewString()
		log.Println("IAM_DEMO_PASSWORD not set; demo logins disabled")
	}
	hash, err := auth.HashSecret(password)
	if err != nil {
		log.Fatalf("hash demo password: %v", err)
	}
	return auth.NewMemoryStore([]auth.StoredCredential{
		{
			Identity: auth.Identity{
				Username:    "elvinv",
				DisplayName: "Elvin Voh",
				Email:       "elvinv@example.com",
				Active:      true,
				Permissions: []uuid.UUID{auth.PermInitiativeDefine},
			},
			PasswordHash: hash,
		},
		{
			Identity: auth.Identity{
				Username:    "vivim",
				DisplayName: "Vivi Mo",
				Email:       "vivim@example.com",
				Active:      true,
			},
			PasswordHash: hash,
		},
	}, auth.BuiltinPermissions)
}

func addrFromEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func accessTTLFromEnv() time.Duration {
	v := os.Getenv("IAM_ACCESS_TTL")
	if v == "" {
		return 0 // service default
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Fatalf("invalid IAM_ACCESS_TTL %q", v)
	}
	return d
}
