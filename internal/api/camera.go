package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantry-tracker/backend/internal/service"
	"github.com/pageza/pantry-tracker/backend/internal/types"
)

// MaxCaptureBytes bounds an uploaded camera frame
const MaxCaptureBytes = 10 << 20

const (
	classifyFailedMessage = "Failed to classify image. Please try again."
	captureFailedMessage  = "Failed to process capture. Please try again."
)

// CameraHandler serves the vision classification proxy and the capture flow
type CameraHandler struct {
	llm         service.LLMServiceInterface
	capture     service.ICaptureService
	rateLimiter gin.HandlerFunc
}

// NewCameraHandler creates a new CameraHandler instance. rateLimiter may be nil.
func NewCameraHandler(llm service.LLMServiceInterface, capture service.ICaptureService, rateLimiter gin.HandlerFunc) *CameraHandler {
	return &CameraHandler{
		llm:         llm,
		capture:     capture,
		rateLimiter: rateLimiter,
	}
}

// RegisterRoutes registers the camera routes
func (h *CameraHandler) RegisterRoutes(router *gin.RouterGroup) {
	camera := router.Group("")
	if h.rateLimiter != nil {
		camera.Use(h.rateLimiter)
	}
	{
		camera.POST("/camera", h.Classify)
		camera.POST("/capture", h.Capture)
	}
}

// Classify forwards an image URL and the inventory names to the vision
// model and returns its reply as plain text.
func (h *CameraHandler) Classify(c *gin.Context) {
	if err := h.llm.Ready(); err != nil {
		respondUpstreamError(c, "CameraHandler", err, classifyFailedMessage)
		return
	}

	var req types.CameraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	label, err := h.llm.Classify(c.Request.Context(), req.Img, req.Inventory)
	if err != nil {
		respondUpstreamError(c, "CameraHandler", err, classifyFailedMessage)
		return
	}
	c.String(http.StatusOK, label)
}

// Capture runs the full capture flow on an uploaded frame: multipart field
// "image" or a raw image body.
func (h *CameraHandler) Capture(c *gin.Context) {
	frame, err := readFrame(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.capture.Capture(c.Request.Context(), frame)
	if err != nil {
		if errors.Is(err, service.ErrInvalidImage) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		respondUpstreamError(c, "CameraHandler", err, captureFailedMessage)
		return
	}
	c.JSON(http.StatusOK, result)
}

func readFrame(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxCaptureBytes)

	var src io.Reader = c.Request.Body
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		header, err := c.FormFile("image")
		if err != nil {
			return nil, fmt.Errorf("missing image field: %w", err)
		}
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open image: %w", err)
		}
		defer file.Close()
		src = file
	}

	frame, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(frame) == 0 {
		return nil, errors.New("image is required")
	}
	return frame, nil
}
