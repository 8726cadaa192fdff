package api

import (
	"net/http"

	"island-eats/internal/domain/menu"
	resdto "island-eats/internal/handler/dto/response"

	"github.com/gin-gonic/gin"
)

type MenuHandler struct {
	catalog *menu.Catalog
}

func NewMenuHandler(catalog *menu.Catalog) *MenuHandler {
	return &MenuHandler{
		catalog: catalog,
	}
}

// @Summary Get menu
// @Description Get the menu items and combo pricing for the current drop
// @Tags menu
// @Produce json
// @Success 200 {object} resdto.MenuResponse
// @Router /menu [get]
func (h *MenuHandler) GetMenu(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromCatalog(h.catalog))
}
