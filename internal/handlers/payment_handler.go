package handlers

import (
	"net/http"

	"github.com/eventmngt/eventapi/internal/dto"
	"github.com/eventmngt/eventapi/internal/services"
	"github.com/gin-gonic/gin"
)

func CreatePayment(ps *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		var req dto.PaymentRequest
		if !bindJSON(c, &req) {
			return
		}

		payment, err := ps.CreatePayment(c.Request.Context(), p, &req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
	}
}

func ListPayments(ps *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}

		payments, err := ps.ListPayments(c.Request.Context(), p)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToPaymentResponses(payments))
	}
}
