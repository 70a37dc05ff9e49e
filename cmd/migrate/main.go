package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/sfmontas/intitiative-planning/internal/auth"
)

// The schema is small enough to live here. Statements are idempotent so the
// command can run on every deploy.
var schema = []string{
	`create table if not exists identities (
		username      text primary key,
		display_name  text not null default '',
		email         text not null default '',
		active        boolean not null default true,
		password_hash text not null,
		created_at    timestamptz not null default now(),
		updated_at    timestamptz not null default now()
	);`,
	`create table if not exists permissions (
		id  uuid primary key,
		key text not null unique
	);`,
	`create table if not exists identity_permissions (
		username      text not null references identities(username) on delete cascade,
		permission_id uuid not null references permissions(id) on delete cascade,
		primary key (username, permission_id)
	);`,
}

func main() {
	log.SetFlags(0)
	dsn := flag.String("dsn", os.Getenv("IAM_PG_DSN"), "PostgreSQL DSN")
	flag.Parse()

	if *dsn == "" {
		log.Fatal("missing DSN: provide via -dsn or IAM_PG_DSN")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.Fatalf("apply schema: %v", err)
		}
	}

	// Seed the builtin permission catalog.
	for _, p := range auth.BuiltinPermissions {
		if _, err := db.ExecContext(ctx,
			`insert into permissions(id, key) values ($1, $2) on conflict (id) do nothing`,
			p.ID, p.Key); err != nil {
			log.Fatalf("seed permission %s: %v", p.Key, err)
		}
	}

	log.Println("schema up to date")
}
