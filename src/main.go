package main

import (
	"errors"
	"ingresso/src/boot"
	"ingresso/src/middlewares"
	"ingresso/src/types"
	"log"
	"net/http"
	"os"
	"path"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	_ "github.com/joho/godotenv/autoload"
)

const (
	apiPrefix string = "/api/v1"
)

var paymentMethodValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	switch types.PaymentMethod(fl.Field().String()) {
	case types.PAYMENT_PIX, types.PAYMENT_CREDIT_CARD, types.PAYMENT_BOLETO, types.PAYMENT_STRIPE, types.PAYMENT_FREE:
		return true
	}
	return false
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(middlewares.SecureHeaders)
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	return router
}

func maintenanceModeMiddleware(g *gin.Engine) *gin.Engine {
	g.Use(func(ctx *gin.Context) {
		mm := os.Getenv("MAINTENANCE_MODE")
		atoi, err := strconv.ParseBool(mm)
		if err == nil && atoi {
			err := errors.New("server is under maintenance")
			log.Println(err.Error())
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, err.Error())
			return
		}
	})
	return g
}

func apiv1Group(g *gin.Engine) *gin.RouterGroup {
	apiv1 := g.Group(apiPrefix)
	return apiv1
}

func main() {
	apiEnv := os.Getenv("API_ENV")
	if apiEnv == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			panic(err)
		}
	}

	boot.InitDb()
	boot.InitScheduler()

	router := setupRouter()
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("paymentmethod", paymentMethodValidatorFunc)
	}
	router.Use(cors.Default())
	router = maintenanceModeMiddleware(router)

	// Webhooks are unauthenticated; Stripe relies on its signature check and
	// the Mercado Pago handler only trusts the payment id it re-fetches.
	paymentWebhookRoutes(router)

	apiv1 := apiv1Group(router)
	apiv1.Use(middlewares.AuthMiddleware)
	checkoutHandlers(apiv1)
	transactionHandlers(apiv1)
	inventoryHandlers(apiv1)

	if err := router.Run(); err != nil {
		log.Fatalf("Error starting server: %s\n", err.Error())
	}
}
