package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/gourav132/Show-IT/internal/domain/profile"
	"github.com/gourav132/Show-IT/pkg/auth"
)

// Seeds one account plus its empty default profile, for local development.
func main() {
	fmt.Println("adding user into database...")

	err := godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	dsn := os.Getenv("DB_DSN")
	email := os.Getenv("SEED_EMAIL")
	name := os.Getenv("SEED_NAME")
	password := os.Getenv("SEED_PASSWORD")
	publicBase := os.Getenv("APP_PUBLIC_BASE")
	if publicBase == "" {
		publicBase = "http://localhost:5173"
	}
	if dsn == "" || email == "" || name == "" || password == "" {
		log.Fatal("DB_DSN, SEED_EMAIL, SEED_NAME and SEED_PASSWORD are required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("cannot hash password: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("cannot connect database: %v", err)
	}
	defer pool.Close()

	userID := uuid.New()
	username := fmt.Sprintf("%s%d", strings.ToLower(strings.Fields(name)[0]), 1000+rand.IntN(9000))
	publicURL := fmt.Sprintf("%s/portfolio/%s", strings.TrimRight(publicBase, "/"), username)

	query := `
		INSERT INTO users (id, email, name, username, auth_provider, password_hash)
		VALUES ($1, $2, $3, $4, 'local', $5)
	`
	if _, err := pool.Exec(context.Background(), query, userID, email, name, username, hash); err != nil {
		log.Fatalf("cannot insert user: %v", err)
	}

	p := profile.Default(userID, username, publicURL)
	p.DisplayName = name
	p.UpdatedAt = time.Now().UTC()
	doc, err := json.Marshal(p)
	if err != nil {
		log.Fatalf("cannot marshal profile: %v", err)
	}

	query = `
		INSERT INTO profiles (owner_id, username, document, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := pool.Exec(context.Background(), query, userID, username, doc, p.UpdatedAt); err != nil {
		log.Fatalf("cannot insert profile: %v", err)
	}

	fmt.Printf("seeded user %s with public url %s\n", email, publicURL)
}
