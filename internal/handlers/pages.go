package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ShowIndexPage renders the tracker's single page; everything else goes
// through the JSON API.
func ShowIndexPage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{})
}
