package main

import (
	"context"
	"errors"
	"fmt"
	"ingresso/src/common"
	"ingresso/src/lib"
	"ingresso/src/types"
	"log"
	"net/http"
	"os"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/yeqown/go-qrcode"
)

func transactionHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/transactions/:id", func(ctx *gin.Context) {
			var params types.TransactionURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			txn, err := common.GetTransactionWithTickets(params.ID)
			if err != nil {
				if errors.Is(err, common.ErrTransactionNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": txn})
		}).
		PUT("/transactions/:id/free", func(ctx *gin.Context) {
			var params types.TransactionURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			txn, err := common.MarkTransactionAsFree(params.ID)
			if err != nil {
				if errors.Is(err, common.ErrTransactionNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				log.Printf("Could not mark transaction %s as free: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": txn})
		}).
		GET("/transactions/:id/pix", func(ctx *gin.Context) {
			var params types.TransactionURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			var code string
			if rd := lib.GetRedisClient(); rd != nil {
				cached, err := rd.Get(context.Background(), fmt.Sprintf("pix:%s", params.ID)).Result()
				if err == nil {
					code = cached
				}
			}
			if code == "" {
				txn, err := common.GetTransactionWithTickets(params.ID)
				if err != nil {
					if errors.Is(err, common.ErrTransactionNotFound) {
						ctx.Status(http.StatusNotFound)
						return
					}
					ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
					return
				}
				if txn.PixQRCode == nil {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "No PIX code for this transaction"})
					return
				}
				code = *txn.PixQRCode
			}

			qrc, err := qrcode.New(code)
			if err != nil {
				log.Printf("Error building QR code for %s: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			filepath := path.Join(os.TempDir(), fmt.Sprintf("pix_%s.jpeg", params.ID))
			if err := qrc.Save(filepath); err != nil {
				log.Printf("Could not save qrcode to file [%s]: %s\n", filepath, err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.FileAttachment(filepath, "pix.jpeg")
		})
	return g
}
