package main

import (
	"encoding/json"
	"ingresso/src/db"
	"ingresso/src/types"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type TestSuite struct {
	suite.Suite
	DB   *gorm.DB
	Mock *sqlmock.Sqlmock
}

func NewMockDB() (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}

	return gormDB, mock
}

func (s *TestSuite) SetupSuite() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("paymentmethod", paymentMethodValidatorFunc)
	}

	d, mock := NewMockDB()
	db.NewDB(d)
	s.DB = d
	s.Mock = &mock

	os.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_test")
}

func (s *TestSuite) TearDownSuite() {
	inner, err := s.DB.DB()
	if err != nil {
		log.Printf("Error accessing inner db instance: %s\n", err.Error())
		return
	}
	inner.Close()
}

func (s *TestSuite) TestPingRoute() {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
}

func (s *TestSuite) TestMaintenanceMode() {
	os.Setenv("MAINTENANCE_MODE", "true")
	defer os.Setenv("MAINTENANCE_MODE", "false")

	router := setupRouter()
	router = maintenanceModeMiddleware(router)
	apiv1Group(router)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 503, w.Code)
}

func (s *TestSuite) TestMercadoPagoWebhook() {
	router := setupRouter()
	paymentWebhookRoutes(router)

	s.Run("Should reject a malformed payload", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/webhook/mercado-pago", strings.NewReader("not json"))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should reject a non-payment notification", func() {
		jbody := map[string]any{
			"type": "test",
			"data": map[string]any{"id": 123},
		}
		sbody, _ := json.Marshal(&jbody)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/webhook/mercado-pago", strings.NewReader(string(sbody)))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
		rbytes, err := io.ReadAll(w.Body)
		assert.Nil(s.T(), err)
		errMsg := gjson.Get(string(rbytes), "error").String()
		assert.NotEmpty(s.T(), errMsg)
	})

	s.Run("Should return 404 when the payment cannot be fetched", func() {
		mp := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			rw.WriteHeader(http.StatusNotFound)
		}))
		defer mp.Close()
		os.Setenv("MP_BASE_URL", mp.URL)
		defer os.Unsetenv("MP_BASE_URL")

		jbody := map[string]any{
			"type": "payment",
			"data": map[string]any{"id": 123456789},
		}
		sbody, _ := json.Marshal(&jbody)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/webhook/mercado-pago", strings.NewReader(string(sbody)))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 404, w.Code)
	})
}

func (s *TestSuite) TestStripeWebhook() {
	router := setupRouter()
	paymentWebhookRoutes(router)

	s.Run("Should reject an unsigned payload", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/webhook/stripe", strings.NewReader(`{"type":"payment_intent.succeeded"}`))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should reject a forged signature", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/webhook/stripe", strings.NewReader(`{"type":"payment_intent.succeeded"}`))
		req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})
}

func (s *TestSuite) TestCheckout() {
	router := setupRouter()
	apiv1 := apiv1Group(router)
	checkoutHandlers(apiv1)

	s.Run("Should return a 400 error response", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/checkout", strings.NewReader("{}"))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
		rbytes, err := io.ReadAll(w.Body)
		assert.Nil(s.T(), err)
		errMsg := gjson.Get(string(rbytes), "error").String()
		assert.NotEmpty(s.T(), errMsg)
	})

	s.Run("Should reject an unknown payment method", func() {
		body := types.CreateCheckoutRequestBody{
			Teams: []types.CheckoutTeamBody{
				{
					TicketTypeID: uuid.NewString(),
					Players: []types.CheckoutPlayerBody{
						{UserID: uuid.NewString()},
					},
				},
			},
			PaymentData: types.PaymentDataBody{
				PaymentMethod: types.PaymentMethod("WIRE"),
			},
		}
		sbody, _ := json.Marshal(&body)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/checkout", strings.NewReader(string(sbody)))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should reject a checkout without an authenticated user", func() {
		body := types.CreateCheckoutRequestBody{
			Teams: []types.CheckoutTeamBody{
				{
					TicketTypeID: uuid.NewString(),
					Players: []types.CheckoutPlayerBody{
						{UserID: uuid.NewString()},
					},
				},
			},
			PaymentData: types.PaymentDataBody{
				PaymentMethod: types.PAYMENT_PIX,
			},
		}
		sbody, _ := json.Marshal(&body)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/checkout", strings.NewReader(string(sbody)))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 401, w.Code)
	})

	s.Run("Should reject a malformed free checkout", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/checkout/free", strings.NewReader("{}"))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})
}

func (s *TestSuite) TestTransactions() {
	router := setupRouter()
	apiv1 := apiv1Group(router)
	transactionHandlers(apiv1)

	s.Run("Should reject a non-uuid transaction id", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/transactions/not-a-uuid", nil)
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should reject a non-uuid id on the free payment route", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/api/v1/transactions/not-a-uuid/free", nil)
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})
}

func (s *TestSuite) TestInventory() {
	router := setupRouter()
	apiv1 := apiv1Group(router)
	inventoryHandlers(apiv1)

	s.Run("Should require ticket_type_ids on the lots route", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/lots", nil)
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should reject a malformed ticket_type_ids list", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/lots?ticket_type_ids=abc,def", nil)
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should require event_id on the coupon route", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/coupons/"+uuid.NewString(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})
}

func TestRunner(t *testing.T) {
	suite.Run(t, new(TestSuite))
}
