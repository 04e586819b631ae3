package api

import (
	"github.com/gin-gonic/gin"

	"prodreel/processor"
)

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(pipeline *processor.Pipeline) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; request logging stays with our own logs
	r.Use(gin.Recovery())

	RegisterGenerateRoutes(r, pipeline)
	RegisterHealthRoutes(r)
	return r
}
