// Package httpapi exposes the application over HTTP with gin.
package httpapi

import (
	"net/http"

	"github.com/example/vocabquiz/internal/auth"
	"github.com/example/vocabquiz/internal/authoring"
	"github.com/example/vocabquiz/internal/progress"
	"github.com/example/vocabquiz/internal/quiz"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// Services are the application services behind the routes
type Services struct {
	Auth      *auth.Service
	Authoring *authoring.Service
	Quiz      *quiz.Engine
	Progress  *progress.Service
}

// NewRouter registers every route under /api/v1
func NewRouter(s Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.MaxMultipartMemory = 8 << 20

	authHandler := NewAuthHandler(s.Auth)
	testHandler := NewTestHandler(s.Authoring)
	quizHandler := NewQuizHandler(s.Quiz, s.Progress)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authHandler.Logout)
		}

		api.GET("/languages", testHandler.ListLanguages)

		private := api.Group("")
		private.Use(RequireUser(s.Auth))
		{
			private.GET("/me", authHandler.Me)

			private.GET("/tests", testHandler.ListTests)
			private.POST("/tests", testHandler.CreateTest)
			private.GET("/tests/:id/edit", testHandler.GetTestForEdit)
			private.PATCH("/tests/:id", testHandler.UpdateTest)
			private.PUT("/tests/:id", testHandler.SubmitTestEdit)
			private.DELETE("/tests/:id", testHandler.DeleteTest)
			private.POST("/tests/:id/entries", testHandler.AddEntry)
			private.POST("/tests/:id/entries/import", testHandler.ImportEntries)
			private.PUT("/entries/:id", testHandler.UpdateEntry)
			private.DELETE("/entries/:id", testHandler.DeleteEntry)

			private.POST("/tests/:id/quiz", quizHandler.StartQuiz)
			private.POST("/tests/:id/submit", quizHandler.SubmitQuiz)
			private.POST("/quiz/random", quizHandler.StartRandomQuiz)

			private.GET("/progress", quizHandler.GetProgress)
		}
	}

	return r
}

// WithCORS wraps h with the CORS policy for the given origins
func WithCORS(h http.Handler, origins []string) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(h)
}
