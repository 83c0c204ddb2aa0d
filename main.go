package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// 1) DB
	dbPath := os.Getenv("QUIZ_DB")
	if dbPath == "" {
		dbPath = "quiz.db"
	}
	db, err := OpenDB(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// 2) Seed (if empty)
	if isEmpty, _ := IsQuestionTableEmpty(db); isEmpty {
		path := os.Getenv("SEED_FILE")
		if path == "" {
			path = "data/quiz.json"
		}
		if _, err := os.Stat(path); err == nil {
			if err := SeedFromJSON(db, path); err != nil {
				log.Fatalf("seed: %v", err)
			}
			log.Printf("Seeded quiz catalog from %s", path)
		} else {
			log.Printf("No seed file at %s; running with empty DB", path)
		}
	}

	// 3) Router
	r := gin.Default()

	// --- CORS: allow the deployed front end + any localhost:port ---
	const frontendOrigin = "https://noberto21.github.io"
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if origin == frontendOrigin {
				return true
			}
			// allow any http://localhost:PORT during development
			return strings.HasPrefix(origin, "http://localhost:")
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// --- Cookie security config ---
	secureCookies := os.Getenv("SECURE_COOKIES") == "true" // set to true behind HTTPS

	// --- Anonymous user middleware ---
	r.Use(EnsureUser(db, secureCookies))

	// Optional health check
	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })

	// --- API routes ---
	api := r.Group("/api/v1")
	{
		// Quiz game
		api.GET("/categories", GetCategories(db))
		api.POST("/game/start", StartGame(db))
		api.GET("/game/:id/state", GetGameState(db))
		api.GET("/game/:id/question", GetQuestion(db))
		api.POST("/game/:id/hint", GetHint(db))
		api.POST("/game/:id/answer", SubmitAnswer(db))

		// User profile
		api.GET("/me", GetMe(db))
		api.PUT("/me", UpdateMe(db))
		api.GET("/me/export-key", ExportKey(db))
		api.POST("/me/restore", RestoreAccount(db, secureCookies))
		api.POST("/auth/logout", Logout(secureCookies))

		// Statistics
		api.GET("/stats", Statistics(db))
	}

	// --- Server ---
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Listening on :%s (SecureCookies=%v)", port, secureCookies)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("run: %v", err)
	}
}
