// Package api serves the loaded table over HTTP, read-only.
package api

import (
	"net/http"

	"github.com/BartekS5/uni-etl/internal/etl"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(reader etl.Reader, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/universities", func(c *gin.Context) {
		rows, err := reader.ReadAll(c.Request.Context())
		if err != nil {
			log.Error("Error reading data: " + err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rows)
	})

	return r
}
