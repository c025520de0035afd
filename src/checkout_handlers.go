package main

import (
	"errors"
	"ingresso/src/common"
	"ingresso/src/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func checkoutHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/checkout", func(ctx *gin.Context) {
			var body types.CreateCheckoutRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId, err := uuid.Parse(ctx.GetString("id"))
			if err != nil {
				ctx.Status(http.StatusUnauthorized)
				return
			}

			txn, err := common.PerformCheckout(&body, userId)
			if err != nil {
				log.Printf("error on checkout: %s\n", err.Error())
				if errors.Is(err, common.ErrNoActiveLot) || errors.Is(err, common.ErrCouponNotFound) {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Error while processing checkout"})
				return
			}

			payment, err := common.ProcessPayment(txn, &body)
			if err != nil {
				log.Printf("Error dispatching payment | Transaction %s: %s\n", txn.ID, err.Error())
				if errors.Is(err, common.ErrUnsupportedGateway) {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusBadGateway, gin.H{"error": "Error while contacting payment gateway"})
				return
			}

			ctx.JSON(http.StatusOK, gin.H{"data": txn, "payment": payment})
		}).
		POST("/checkout/free", func(ctx *gin.Context) {
			var body types.CreateFreeCheckoutRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId, err := uuid.Parse(ctx.GetString("id"))
			if err != nil {
				ctx.Status(http.StatusUnauthorized)
				return
			}

			txn, err := common.PerformFreeCheckout(&body, userId)
			if err != nil {
				log.Printf("error on free checkout: %s\n", err.Error())
				if errors.Is(err, common.ErrNoActiveLot) {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Error while processing checkout"})
				return
			}

			ctx.JSON(http.StatusOK, gin.H{"data": txn})
		})
	return g
}
