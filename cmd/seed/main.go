package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/prowtech/complet-users/config"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	seeds := []struct {
		email    string
		age      int
		password string
	}{
		{"demo@complet.com.br", 25, "password123"},
		{"suporte@complet.com.br", 31, "password123"},
	}

	for _, s := range seeds {
		var id string
		err := db.QueryRow(`
			INSERT INTO users (email, age, password)
			VALUES ($1, $2, $3)
			ON CONFLICT (email) DO UPDATE SET age = EXCLUDED.age
			RETURNING id
		`, s.email, s.age, s.password).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", s.email, err)
		}
		fmt.Printf("seeded user: id=%s email=%s age=%d\n", id, s.email, s.age)
	}
}
