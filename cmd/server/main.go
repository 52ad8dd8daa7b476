package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"bikerental/internal/api"
	"bikerental/internal/auth"
	"bikerental/internal/clock"
	"bikerental/internal/repository"
	"bikerental/internal/service"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.Close()

	bikeRepo := repository.NewBikeRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	userRepo := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)

	clk := clock.NewSystem()
	sender := service.NewSenderService(userRepo)
	bookingSvc := service.NewBookingService(bikeRepo, bookingRepo, sender, clk)
	authSvc := service.NewAuthService(userRepo)
	jobSvc := service.NewJobService(jobRepo, clk)

	bikeHandler := api.NewBikeHandler(bookingSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc)
	adminHandler := api.NewAdminHandler(bookingSvc)
	authHandler := api.NewAuthHandler(authSvc)
	healthHandler := api.NewHealthHandler(db)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/health", healthHandler.Health).Methods("GET")
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/bikes", bikeHandler.ListBikes).Methods("GET")
	r.HandleFunc("/api/bikes/check-availability", bikeHandler.CheckAvailability).Methods("POST")
	r.HandleFunc("/api/bikes/{id}", bikeHandler.GetBike).Methods("GET")

	// Authenticated endpoints
	bookings := r.PathPrefix("/api/bookings").Subrouter()
	bookings.Use(auth.Middleware)
	bookings.HandleFunc("", bookingHandler.CreateBooking).Methods("POST")
	bookings.HandleFunc("/my", bookingHandler.MyBookings).Methods("GET")
	bookings.HandleFunc("/{id}", bookingHandler.GetBooking).Methods("GET")
	bookings.HandleFunc("/{id}", bookingHandler.CancelBooking).Methods("DELETE")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.Middleware, auth.AdminOnly)
	admin.HandleFunc("/bikes", adminHandler.CreateBike).Methods("POST")
	admin.HandleFunc("/bikes/{id}", adminHandler.UpdateBike).Methods("PUT")
	admin.HandleFunc("/bikes/{id}", adminHandler.DeleteBike).Methods("DELETE")
	admin.HandleFunc("/bookings", adminHandler.ListBookings).Methods("GET")

	c := cron.New()
	if _, err := c.AddFunc("@every 10m", func() {
		if err := jobSvc.SendUpcomingReminders(); err != nil {
			log.Printf("Reminder job failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule reminder job: %v", err)
	}
	c.Start()
	defer c.Stop()

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{os.Getenv("CORS_ORIGIN")}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, cors(r))))
}
