package main

import (
	"context"
	"log"
	"net/http"

	"github.com/rs/cors"

	"hainetsukaishu-backend/internal/config"
	"hainetsukaishu-backend/internal/controller"
	"hainetsukaishu-backend/internal/push"
	"hainetsukaishu-backend/internal/repository"
	"hainetsukaishu-backend/internal/routes"
	"hainetsukaishu-backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	// Initialize repository, service, and controller
	repo := repository.NewInfluxDBRepository(cfg.InfluxDBURL, cfg.InfluxDBToken, cfg.InfluxDBOrg, cfg.InfluxDBBucket, cfg.FlowField)
	defer repo.Close()

	if err := repo.Ping(context.Background()); err != nil {
		log.Fatalf("Error connecting to InfluxDB: %v", err)
	}
	log.Println("Successfully connected to InfluxDB!")

	queryService := service.NewQueryService(repo, cfg)
	dataController := controller.NewDataController(queryService)

	// Push hub for connected dashboard clients
	hub := push.NewHub(queryService, cfg.PushInterval)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	// Set up routes
	router := routes.SetupRouter(dataController, hub)

	// CORS setup
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})
	handler := c.Handler(router)

	// Start the HTTP server
	log.Printf("Server is running on port %s...", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
