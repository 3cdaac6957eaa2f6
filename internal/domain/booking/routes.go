package booking

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/today", h.TodayCheckIns)
		bookings.GET("/export", h.ExportBookings)
		bookings.GET("/:id", h.GetBooking)
	}
}
