package main

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/joho/godotenv"
)

//go:embed schema.sql
var schemaSQL string

//go:embed drop.sql
var dropSQL string

func main() {
	var (
		dsnFlag  string
		downFlag bool
	)

	flag.StringVar(&dsnFlag, "dsn", "", "Postgres connection string (falls back to DATABASE_URL)")
	flag.BoolVar(&downFlag, "down", false, "drop all tables instead of creating them")
	flag.Parse()

	_ = godotenv.Load()

	dsn := strings.TrimSpace(dsnFlag)
	if dsn == "" {
		dsn = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}
	if dsn == "" {
		exitWithError(errors.New("either -dsn or DATABASE_URL must be provided"))
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		exitWithError(fmt.Errorf("failed to open database: %w", err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}

	script := schemaSQL
	action := "applied"
	if downFlag {
		script = dropSQL
		action = "dropped"
	}

	if _, err := db.ExecContext(ctx, script); err != nil {
		exitWithError(fmt.Errorf("failed to run migration: %w", err))
	}

	fmt.Printf("schema %s\n", action)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
