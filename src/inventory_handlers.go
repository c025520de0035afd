package main

import (
	"errors"
	"ingresso/src/common"
	"ingresso/src/db"
	"ingresso/src/models"
	"ingresso/src/types"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func parseUUIDList(param string) ([]uuid.UUID, error) {
	parts := strings.Split(param, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func inventoryHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/lots", func(ctx *gin.Context) {
			param := ctx.Query("ticket_type_ids")
			if param == "" {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "ticket_type_ids is required"})
				return
			}
			ids, err := parseUUIDList(param)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			lots, err := common.FindLotsByTicketTypeIds(ids)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": lots, "count": len(lots)})
		}).
		GET("/categories", func(ctx *gin.Context) {
			param := ctx.Query("ids")
			if param == "" {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "ids is required"})
				return
			}
			ids, err := parseUUIDList(param)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			categories, err := common.FindCategoriesByIds(ids)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": categories, "count": len(categories)})
		}).
		GET("/coupons/:id", func(ctx *gin.Context) {
			var params types.SimpleURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			eventId, err := uuid.Parse(ctx.Query("event_id"))
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "event_id is required"})
				return
			}
			couponId, err := uuid.Parse(params.ID)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			coupon, err := common.FindCouponById(couponId, eventId)
			if err != nil {
				if errors.Is(err, common.ErrCouponNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": coupon})
		}).
		POST("/categories", func(ctx *gin.Context) {
			var body types.CreateCategoryRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ticketTypeId, err := uuid.Parse(body.TicketTypeID)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			category := models.Category{
				TicketTypeID: ticketTypeId,
				Title:        body.Title,
				Quantity:     body.Quantity,
			}
			gdb := db.GetDb()
			if err := gdb.Create(&category).Error; err != nil {
				log.Printf("Error creating category: %s\n", err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": category})
		}).
		GET("/categories/:id", func(ctx *gin.Context) {
			var params types.SimpleURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			gdb := db.GetDb()
			var category models.Category
			if err := gdb.Where("id = ?", params.ID).First(&category).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": category})
		}).
		PUT("/categories/:id", func(ctx *gin.Context) {
			var params types.SimpleURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateCategoryRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates := map[string]any{}
			if body.Title != nil {
				updates["title"] = *body.Title
			}
			if body.Quantity != nil {
				updates["quantity"] = *body.Quantity
			}
			gdb := db.GetDb()
			res := gdb.
				Model(&models.Category{}).
				Where("id = ?", params.ID).
				Updates(updates)
			if res.Error != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": res.Error.Error()})
				return
			}
			if res.RowsAffected == 0 {
				ctx.Status(http.StatusNotFound)
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		DELETE("/categories/:id", func(ctx *gin.Context) {
			var params types.SimpleURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			gdb := db.GetDb()
			if err := gdb.
				Where("id = ?", params.ID).
				Delete(&models.Category{}).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
