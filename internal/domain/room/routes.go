package room

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rooms := rg.Group("/rooms")
	{
		rooms.GET("", h.ListRooms)
		rooms.GET("/:id/availability", h.Availability)
		rooms.DELETE("/:id", h.DeleteRoom)
	}
}
