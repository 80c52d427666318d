package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"scriptbridge/internal/infra"
	"scriptbridge/internal/sqlinline"
)

func main() {
	var (
		idFlag     string
		emailFlag  string
		limitFlag  int
		refillFlag bool
	)

	flag.StringVar(&idFlag, "id", "", "user ID to update (UUID)")
	flag.StringVar(&emailFlag, "email", "", "user email to update")
	flag.IntVar(&limitFlag, "limit", 50, "daily credit limit to assign")
	flag.BoolVar(&refillFlag, "refill", false, "also top the balance up to the new limit right now")
	flag.Parse()

	userID := strings.TrimSpace(idFlag)
	email := strings.TrimSpace(emailFlag)

	if userID == "" && email == "" {
		exitWithError(errors.New("either -id or -email must be provided"))
	}
	if limitFlag <= 0 {
		exitWithError(errors.New("-limit must be positive"))
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "usercredits").Logger()
	runner := infra.NewSQLRunner(pool, logger)

	if userID == "" {
		lookupCtx, cancelLookup := context.WithTimeout(context.Background(), 5*time.Second)
		row := runner.QueryRow(lookupCtx, sqlinline.QSelectUserIDByEmail, email)
		scanErr := row.Scan(&userID)
		cancelLookup()
		if scanErr != nil {
			exitWithError(fmt.Errorf("failed to load user by email: %w", scanErr))
		}
	}

	updateCtx, cancelUpdate := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelUpdate()

	var (
		remaining  int
		dailyLimit int
	)
	row := runner.QueryRow(updateCtx, sqlinline.QSetDailyLimit, userID, limitFlag, refillFlag)
	if err := row.Scan(&remaining, &dailyLimit); err != nil {
		if infra.IsNoRows(err) {
			exitWithError(fmt.Errorf("user %s has no credit row yet; they get one on first sign-in", userID))
		}
		exitWithError(fmt.Errorf("failed to update credits: %w", err))
	}

	fmt.Printf("User %s updated: daily_limit=%d credits_remaining=%d\n", userID, dailyLimit, remaining)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
