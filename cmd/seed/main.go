// seed inserts a demo user and a handful of todos into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ErlanBelekov/todo-api/internal/infrastructure/postgres"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedEmail    = "seed@test.local"
	seedPassword = "123456"
)

var todos = []struct {
	text      string
	completed bool
}{
	{"Buy groceries", false},
	{"Write the weekly report", true},
	{"Renew gym membership", false},
	{"Ship the release", false},
	{"Reply to the landlord", true},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("schema: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	// Upsert demo user
	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		RETURNING id`,
		seedEmail, string(hash),
	).Scan(&userID)
	if err != nil {
		log.Fatalf("upsert user: %v", err)
	}

	// Insert todos, skip any that already exist (idempotent re-runs)
	var inserted, skipped int
	for _, spec := range todos {
		var completedAt *int64
		if spec.completed {
			now := time.Now().UnixMilli()
			completedAt = &now
		}

		tag, err := pool.Exec(ctx, `
			INSERT INTO todos (creator_id, text, completed, completed_at)
			SELECT $1, $2, $3, $4
			WHERE NOT EXISTS (
				SELECT 1 FROM todos WHERE creator_id = $1 AND text = $2
			)`,
			userID, spec.text, spec.completed, completedAt,
		)
		if err != nil {
			log.Fatalf("insert todo %q: %v", spec.text, err)
		}
		if tag.RowsAffected() == 0 {
			skipped++
		} else {
			inserted++
		}
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:          %s / %s\n", seedEmail, seedPassword)
	fmt.Printf("  User ID:       %s\n", userID)
	fmt.Printf("  Todos created: %d  (skipped %d already existing)\n", inserted, skipped)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — log in and grab the x-auth header:")
	fmt.Println()
	fmt.Printf("    curl -si -X POST http://localhost:8080/users/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}' | grep -i x-auth\n", seedEmail, seedPassword)
	fmt.Println()
	fmt.Println("  Step 2 — list your todos:")
	fmt.Println()
	fmt.Println("    export TOKEN=eyJ...")
	fmt.Println("    curl -s http://localhost:8080/todos -H \"x-auth: $TOKEN\"")
	fmt.Println()
	fmt.Println("  Step 3 — complete one (use an id from the list):")
	fmt.Println()
	fmt.Println("    curl -s -X PATCH http://localhost:8080/todos/TODO_ID \\")
	fmt.Println("      -H \"x-auth: $TOKEN\" -H 'Content-Type: application/json' \\")
	fmt.Println("      -d '{\"completed\":true}'")
	fmt.Println()
	fmt.Println("  Step 4 — log out; the same token now gets a 401:")
	fmt.Println()
	fmt.Println("    curl -s -X DELETE http://localhost:8080/users/me/token -H \"x-auth: $TOKEN\"")
	fmt.Println("    curl -si http://localhost:8080/users/me -H \"x-auth: $TOKEN\" | head -1")
}
