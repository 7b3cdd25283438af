package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/aninayuwoki/cobranza/internal/handlers"
)

// RegisterAPIRoutes registers the student API.
func RegisterAPIRoutes(r *gin.Engine, h *handlers.StudentHandler) {
	api := r.Group("/api")
	{
		students := api.Group("/students")
		{
			students.GET("", h.List)
			students.POST("", h.Create)
			students.GET("/export", h.Export)
			students.GET("/:id", h.Get)
			students.PUT("/:id", h.Update)
			students.DELETE("/:id", h.Delete)
		}
	}
}
