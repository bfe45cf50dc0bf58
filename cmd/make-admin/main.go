// Promotes an existing account to the ADMIN role:
//
//	go run ./cmd/make-admin user@example.com
package main

import (
	"context"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"salon-booking-api/internal/model"
	"salon-booking-api/internal/store"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatal("usage: make-admin <email>")
	}
	email := os.Args[1]

	_ = godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	st := store.New(pool)
	if err := st.SetUserRole(context.Background(), email, model.RoleAdmin); err != nil {
		log.Fatalf("set role: %v", err)
	}
	log.Printf("%s is now an admin", email)
}
