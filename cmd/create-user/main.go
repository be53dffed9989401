// Command create-user seeds a user account, useful for local development.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"scholarspace-backend/errs"
	"scholarspace-backend/models"
	"scholarspace-backend/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	name := flag.String("name", "Test User", "display name")
	email := flag.String("email", "test@example.com", "email address")
	password := flag.String("password", "testpassword123", "plaintext password")
	flag.Parse()

	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: No .env file found, using environment variables")
	}

	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	users := repository.NewUserRepository(pool)
	user := &models.User{
		Name:         *name,
		Email:        *email,
		PasswordHash: string(hash),
	}
	if err := users.Create(ctx, user); err != nil {
		if errors.Is(err, errs.ErrDuplicateUser) {
			log.Printf("User with email %s already exists", *email)
			return
		}
		log.Fatalf("Failed to create user: %v", err)
	}

	log.Printf("Created user %s (ID: %s)", *email, user.ID)
}
