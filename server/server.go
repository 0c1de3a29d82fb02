package server

import (
	"recipe-server/confs"
	"recipe-server/db"
	httpHandler "recipe-server/handlers/http"
	"recipe-server/middleware"
	"recipe-server/repositories"
	"recipe-server/usecases"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	app *gin.Engine
	db  db.Database
}

func NewServer(database db.Database) *Server {
	return &Server{
		app: Routes(database, confs.MediaDir()),
		db:  database,
	}
}

// Routes wires repositories, usecases and handlers onto a gin engine.
// Split out from Start so tests can run the exact production routing.
func Routes(database db.Database, mediaDir string) *gin.Engine {
	app := gin.Default()

	// Setup CORS middleware
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	app.Use(cors.New(config))

	// Setup healthcheck route
	app.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "OK",
		})
	})

	// Initialize repositories
	userRepo := repositories.NewUserPgRepository(database)
	tokenRepo := repositories.NewTokenPgRepository(database)
	tagRepo := repositories.NewTagPgRepository(database)
	ingredientRepo := repositories.NewIngredientPgRepository(database)
	recipeRepo := repositories.NewRecipePgRepository(database)

	// Initialize use cases
	userUseCase := usecases.NewUserUseCase(userRepo, tokenRepo)
	tagUseCase := usecases.NewTagUseCase(tagRepo)
	ingredientUseCase := usecases.NewIngredientUseCase(ingredientRepo)
	recipeUseCase := usecases.NewRecipeUseCase(recipeRepo, tagRepo, ingredientRepo)

	// Initialize handlers
	authHandler := httpHandler.NewAuthHandler(userUseCase)
	tagHandler := httpHandler.NewTagHandler(tagUseCase)
	ingredientHandler := httpHandler.NewIngredientHandler(ingredientUseCase)
	recipeHandler := httpHandler.NewRecipeHandler(recipeUseCase, mediaDir)

	// Uploaded images are served straight from the media dir
	app.Static("/media", mediaDir)

	// Setup API routes
	api := app.Group("/api/v1")
	{
		// Auth routes (unauthenticated)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/token", authHandler.CreateToken)
		}

		// Everything below requires a valid token
		protected := api.Group("")
		protected.Use(middleware.TokenAuth(userUseCase))

		tags := protected.Group("/tags")
		{
			tags.GET("", tagHandler.List)
			tags.POST("", tagHandler.Create)
		}

		ingredients := protected.Group("/ingredients")
		{
			ingredients.GET("", ingredientHandler.List)
			ingredients.POST("", ingredientHandler.Create)
		}

		recipes := protected.Group("/recipes")
		{
			recipes.GET("", recipeHandler.List)
			recipes.POST("", recipeHandler.Create)
			recipes.GET("/:id", recipeHandler.Get)
			recipes.PUT("/:id", recipeHandler.Update)
			recipes.PATCH("/:id", recipeHandler.Patch)
			recipes.DELETE("/:id", recipeHandler.Delete)
			recipes.POST("/:id/upload-image", recipeHandler.UploadImage)
		}
	}

	return app
}

func (s *Server) Start() {
	if err := s.app.Run(confs.Addr()); err != nil {
		panic(err)
	}
}
