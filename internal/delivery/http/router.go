package http

import (
	"regexp"

	"github.com/anupamx/matrimony-backend/internal/delivery/http/handler"
	"github.com/anupamx/matrimony-backend/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type Router struct {
	userHandler  *handler.UserHandler
	matchHandler *handler.MatchHandler
}

func NewRouter(
	userHandler *handler.UserHandler,
	matchHandler *handler.MatchHandler,
) *Router {
	return &Router{
		userHandler:  userHandler,
		matchHandler: matchHandler,
	}
}

// mobileRegex matches +<1-3 digit country code><10 digits>.
var mobileRegex = regexp.MustCompile(`^\+\d{1,3}\d{10}$`)

// RegisterValidators installs the custom binding validators used by the
// request DTOs. Safe to call more than once.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
			return mobileRegex.MatchString(fl.Field().String())
		})
	}
}

func (r *Router) Setup() *gin.Engine {
	RegisterValidators()

	router := gin.Default()
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	users := router.Group("/users")
	{
		users.POST("/", r.userHandler.Create)
		users.GET("/", r.userHandler.List)
		users.GET("/:user_id", r.userHandler.Get)
		users.PUT("/:user_id", r.userHandler.Update)
		users.DELETE("/:user_id", r.userHandler.Delete)
		users.GET("/:user_id/matches", r.matchHandler.FindMatches)
	}

	bio := router.Group("/bio")
	{
		bio.POST("/suggestions", r.userHandler.SuggestBio)
	}

	return router
}
