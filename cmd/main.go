package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"AreaHelper-App/internal/config"
	"AreaHelper-App/internal/handler"
	"AreaHelper-App/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	if os.Getenv("MAPBOX_TOKEN") == "" {
		fmt.Println("⚠️  MAPBOX_TOKEN is not set.")
		fmt.Println("Sessions without a token attribute will show a credential warning,")
		fmt.Println("and address search will be unavailable until a token is supplied.")
	}
	if os.Getenv("FIRESTORE_PROJECT_ID") == "" {
		fmt.Println("Sketch snapshot store disabled (FIRESTORE_PROJECT_ID not set)")
	}

	tokenStore := config.NewTokenStore(os.Getenv("TOKEN_STORE_PATH"))
	sketchUseCase := usecase.NewSketchUseCase(tokenStore)
	sketchHandler := handler.NewSketchHandler(sketchUseCase)

	r := gin.Default()
	sketchHandler.RegisterRoutes(r)
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "AreaHelper-App"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("AreaHelper-App server starting on :%s...\n", port)
	log.Fatal(r.Run(":" + port))
}
