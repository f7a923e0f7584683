package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omnicrm/backend/internal/interfaces/http/dto"
)

// BaseHandler provides common response helpers
type BaseHandler struct{}

// Success sends a 200 envelope
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Error sends an error envelope with an explicit code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.HTTPStatus(code), dto.NewErrorResponse(code, message))
}

// DomainError maps err through the dto taxonomy and sends it
func (h *BaseHandler) DomainError(c *gin.Context, err error) {
	code, message := dto.MapError(err)
	c.JSON(dto.HTTPStatus(code), dto.NewErrorResponse(code, message))
}
