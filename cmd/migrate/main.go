package main

import (
	"database/sql"
	"log"
	"os"

	"bikerental/internal/db"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	database, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer database.Close()

	if _, err := database.Exec(db.Schema); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migration applied")
}
