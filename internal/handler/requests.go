package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"procurehub/internal/apierror"
	"procurehub/internal/dto"
	"procurehub/internal/repository"
	"procurehub/internal/service"

	"github.com/gin-gonic/gin"
)

type RequestsHandler struct{ svc service.RequestService }

func NewRequestsHandler(svc service.RequestService) *RequestsHandler {
	return &RequestsHandler{svc: svc}
}

func (h *RequestsHandler) Create(c *gin.Context) {
	var req dto.CreateRequestRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RequestsHandler) List(c *gin.Context) {
	var filter dto.RequestFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RequestsHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, apierror.New("Request not found"))
		return
	}
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RequestsHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.StatusUpdateRequest
	if !bindAndValidate(c, &req) {
		return
	}
	err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, apierror.New("Request not found"))
		return
	}
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Status updated"})
}

func (h *RequestsHandler) DownloadPDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	path, err := h.svc.ExportPDF(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, apierror.New("Request not found"))
		return
	}
	if err != nil {
		c.Error(err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

// parseID reads the :id path param. Unknown ids are a 404 concern; a
// non-numeric id can never exist, so it maps to 404 as well.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Request not found"))
		return 0, false
	}
	return uint(id), true
}
