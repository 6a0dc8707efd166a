package main

import (
	"log"
	"os"
	"time"

	"learning-engine/internal/cache"
	"learning-engine/internal/db"
	"learning-engine/internal/event"
	"learning-engine/internal/handlers"
	"learning-engine/internal/remote"
	"learning-engine/internal/scheduler"
	"learning-engine/internal/session"
	"learning-engine/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}

	apiURL := os.Getenv("REMOTE_API_URL")
	if apiURL == "" {
		log.Fatal("REMOTE_API_URL is required")
	}
	apiToken := os.Getenv("REMOTE_API_TOKEN")

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}
	db.InitMongo(mongoURI)
	database := db.Client.Database("learning_engine")

	// RabbitMQ signal publisher
	rabbitURL := os.Getenv("RABBITMQ_URI")
	signalExchange := os.Getenv("RABBITMQ_EXCHANGE")
	var publisher *event.AMQPPublisher
	if rabbitURL != "" && signalExchange != "" {
		var err error
		publisher, err = event.NewAMQPPublisher(rabbitURL, signalExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, engine signals will not be published")
	}

	// Caches, progress store, remote boundary, orchestrator
	listCache := cache.NewMongoCollectionList(database)
	statsCache := cache.NewMongoStats(database)
	calendarCache := cache.NewMongoCalendar(database)

	progress := store.New()
	api := remote.NewClient(apiURL, apiToken)

	var events event.Publisher
	if publisher != nil {
		events = publisher
	}
	engine := session.New(api, progress, events, listCache, statsCache, calendarCache)

	// Day rollover sweep for sessions idle across midnight
	sweep := scheduler.New(engine, 15*time.Minute)
	sweep.Start()
	defer sweep.Stop()

	engineHandler := handlers.NewEngineHandler(engine, progress)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	sessionRoutes := r.Group("/engine/session")
	{
		sessionRoutes.GET("/", engineHandler.GetSession)
		sessionRoutes.POST("/activate", engineHandler.ActivateSession)
		sessionRoutes.POST("/answer", engineHandler.SubmitAnswer)
		sessionRoutes.POST("/skip", engineHandler.Skip)
		sessionRoutes.POST("/master", engineHandler.MarkMastered)
		sessionRoutes.POST("/review-mode", engineHandler.ToggleReviewMode)
		sessionRoutes.POST("/stop", engineHandler.StopCollection)
	}

	collectionRoutes := r.Group("/engine/collections")
	{
		collectionRoutes.GET("/", engineHandler.ListCollections)
		collectionRoutes.GET("/learning", engineHandler.LearningList)
		collectionRoutes.POST("/register", engineHandler.RegisterCollection)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "6677"
	}
	r.Run(":" + port)
}
