package main

import (
	"database/sql"
	"log"
	"os"

	"bikerental/internal/db"
	"bikerental/internal/repository"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

var seedBikes = []db.Bike{
	{
		Name:         "Urban Cruiser",
		Type:         "electric",
		ImageURL:     "https://images.pexels.com/photos/100582/pexels-photo-100582.jpeg?auto=compress&cs=tinysrgb&w=800",
		Description:  "Perfect for city commuting with electric assist",
		PricePerHour: 15,
		IsAvailable:  true,
		Location:     "Downtown",
		Rating:       4.8,
		Features:     []string{"Electric", "GPS", "Light", "Lock"},
	},
	{
		Name:         "Mountain Explorer",
		Type:         "mountain",
		ImageURL:     "https://images.pexels.com/photos/100582/pexels-photo-100582.jpeg?auto=compress&cs=tinysrgb&w=800",
		Description:  "Rugged mountain bike for off-road adventures",
		PricePerHour: 12,
		IsAvailable:  true,
		Location:     "North Station",
		Rating:       4.6,
		Features:     []string{"Suspension", "All-terrain", "Water bottle", "Repair kit"},
	},
	{
		Name:         "Speed Demon",
		Type:         "road",
		ImageURL:     "https://images.pexels.com/photos/100582/pexels-photo-100582.jpeg?auto=compress&cs=tinysrgb&w=800",
		Description:  "High-performance road bike for speed enthusiasts",
		PricePerHour: 18,
		IsAvailable:  true,
		Location:     "West End",
		Rating:       4.9,
		Features:     []string{"Carbon frame", "Racing wheels", "Aerodynamic", "Lightweight"},
	},
	{
		Name:         "Family Cruiser",
		Type:         "hybrid",
		ImageURL:     "https://images.pexels.com/photos/100582/pexels-photo-100582.jpeg?auto=compress&cs=tinysrgb&w=800",
		Description:  "Comfortable hybrid bike perfect for family rides",
		PricePerHour: 10,
		IsAvailable:  true,
		Location:     "Central Park",
		Rating:       4.7,
		Features:     []string{"Comfortable seat", "Basket", "Bell", "Reflectors"},
	},
}

var seedUsers = []db.User{
	{Name: "Admin User", Email: "admin@example.com", Phone: "123-456-7890", Role: "admin"},
	{Name: "John Doe", Email: "john@example.com", Phone: "123-456-7890", Role: "user"},
	{Name: "Jane Smith", Email: "jane@example.com", Phone: "098-765-4321", Role: "user"},
}

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

	bikeRepo := repository.NewBikeRepository(database)
	userRepo := repository.NewUserRepository(database)

	for i := range seedBikes {
		if err := bikeRepo.CreateBike(&seedBikes[i]); err != nil {
			log.Fatalf("Failed to seed bike %q: %v", seedBikes[i].Name, err)
		}
	}
	log.Printf("Seeded %d bikes", len(seedBikes))

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "password"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}
	for i := range seedUsers {
		seedUsers[i].PasswordHash = string(hash)
		if err := userRepo.CreateUser(&seedUsers[i]); err != nil {
			log.Fatalf("Failed to seed user %q: %v", seedUsers[i].Email, err)
		}
	}
	log.Printf("Seeded %d users", len(seedUsers))
}
