package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/finledger/finledger/config"
	"github.com/finledger/finledger/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@finledger.dev"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id
	`, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	type row struct {
		desc     string
		amount   float64
		category string
		typ      string
		date     string
	}
	samples := []row{
		{"Monthly salary", 3200, "salary", "INCOME", "2026-08-01"},
		{"Groceries", 84.50, "food", "EXPENSE", "2026-08-03"},
		{"Apartment rent", 950, "rent", "EXPENSE", "2026-08-05"},
		{"Freelance project", 600, "freelance", "INCOME", "2026-08-12"},
		{"Restaurant dinner", 42.30, "food", "EXPENSE", "2026-08-15"},
		{"Electricity bill", 68, "utilities", "EXPENSE", "2026-08-20"},
	}
	for _, s := range samples {
		if _, err := db.Exec(`
			INSERT INTO transactions (description, amount, category, type, date, user_id)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, s.desc, s.amount, s.category, s.typ, s.date, id); err != nil {
			log.Fatalf("failed to seed transaction %q: %v", s.desc, err)
		}
	}
	fmt.Printf("seeded %d transactions\n", len(samples))
}
