package handler

import (
	"io"
	"net/http"

	"procurehub/internal/apierror"
	"procurehub/internal/service"

	"github.com/gin-gonic/gin"
)

type ExtractHandler struct{ svc service.ExtractionService }

func NewExtractHandler(svc service.ExtractionService) *ExtractHandler {
	return &ExtractHandler{svc: svc}
}

// Extract accepts a multipart document upload and returns the AI-extracted
// create payload. A failed extraction is a client-visible 400 so the UI can
// fall back to the manual form; nothing is persisted either way.
func (h *ExtractHandler) Extract(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Missing file upload."))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Could not read uploaded file."))
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Could not read uploaded file."))
		return
	}

	draft := h.svc.Extract(c.Request.Context(), content, fileHeader.Filename)
	if draft == nil {
		c.JSON(http.StatusBadRequest, apierror.New("Could not extract data."))
		return
	}
	c.JSON(http.StatusOK, draft)
}
