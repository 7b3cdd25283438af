package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/aninayuwoki/cobranza/internal/handlers"
)

// SetupRoutes wires the page, static assets and the API onto the engine.
func SetupRoutes(r *gin.Engine, h *handlers.StudentHandler) {
	r.LoadHTMLGlob("web/templates/*.html")
	r.Static("/static", "./web/static")

	r.GET("/", handlers.ShowIndexPage)
	RegisterAPIRoutes(r, h)
}
