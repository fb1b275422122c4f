package handler

import (
	"net/http"

	"procurehub/internal/taxonomy"

	"github.com/gin-gonic/gin"
)

// CommodityGroups returns the static taxonomy for form dropdowns.
func CommodityGroups(c *gin.Context) {
	c.JSON(http.StatusOK, taxonomy.Groups())
}
