package payment

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.POST("", h.AddPayment)
		payments.POST("/refund", h.Refund)
		payments.GET("/booking/:id", h.ListByBooking)
		payments.DELETE("/:id", h.DeletePayment)
	}
}
