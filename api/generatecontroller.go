package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"prodreel/assets"
	"prodreel/layout"
	"prodreel/processor"
	"prodreel/speech"
	"prodreel/types"
	"prodreel/video"
)

// GenerateResponse is the envelope for single-product generation calls.
type GenerateResponse struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message,omitempty"`
	Result  *types.GenerationResult `json:"result,omitempty"`
	Error   string                  `json:"error,omitempty"`
}

// RegisterGenerateRoutes wires the generation endpoints.
func RegisterGenerateRoutes(r *gin.Engine, pipeline *processor.Pipeline) {
	ctrl := &generateController{pipeline: pipeline}
	r.POST("/api/generate", ctrl.handleGenerate)
}

type generateController struct {
	pipeline *processor.Pipeline
}

func (c *generateController) handleGenerate(ctx *gin.Context) {
	var job types.ProductJob
	if err := ctx.ShouldBindJSON(&job); err != nil {
		ctx.JSON(http.StatusBadRequest, GenerateResponse{Error: "invalid JSON payload: " + err.Error()})
		return
	}
	if job.Title == "" {
		ctx.JSON(http.StatusBadRequest, GenerateResponse{Error: "title is required"})
		return
	}

	result, err := c.pipeline.GenerateProduct(ctx.Request.Context(), job)
	if err != nil {
		ctx.JSON(statusFor(err), GenerateResponse{Error: err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, GenerateResponse{
		Success: true,
		Message: "video generated",
		Result:  result,
	})
}

// statusFor maps the pipeline's error taxonomy onto HTTP statuses: input
// problems are the caller's to fix, everything else is ours.
func statusFor(err error) int {
	switch {
	case errors.Is(err, processor.ErrEmptyNarration),
		errors.Is(err, processor.ErrNoNarrationSource),
		errors.Is(err, assets.ErrNoImages),
		errors.Is(err, assets.ErrImageDecode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, layout.ErrFontLoad),
		errors.Is(err, speech.ErrSynthesis),
		errors.Is(err, video.ErrEncoding):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
