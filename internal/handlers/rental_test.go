package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ktaneda/rental-ledger-api/internal/constants"
	"github.com/ktaneda/rental-ledger-api/internal/database"
	"github.com/ktaneda/rental-ledger-api/internal/dto"
	"github.com/ktaneda/rental-ledger-api/internal/middleware"
	"github.com/ktaneda/rental-ledger-api/internal/models"
	"github.com/ktaneda/rental-ledger-api/internal/repository"
	"github.com/ktaneda/rental-ledger-api/internal/services"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// RentalHandlerTestSuite defines the test suite for RentalHandler
type RentalHandlerTestSuite struct {
	suite.Suite
	db            *gorm.DB
	handler       *RentalHandler
	rentalService *services.RentalService
}

// SetupTest runs before each test
func (suite *RentalHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Rental{},
		&models.Payment{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	rentalRepo := repository.NewRentalRepository(suite.db)
	suite.rentalService = services.NewRentalService(rentalRepo)
	suite.handler = NewRentalHandler(suite.rentalService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *RentalHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data

func (suite *RentalHandlerTestSuite) createTestUser(name string) *models.User {
	user := &models.User{
		Name:         name,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *RentalHandlerTestSuite) createTestRental(userID uint64, address string) *models.Rental {
	rental := &models.Rental{
		UserID:     userID,
		Address:    address,
		Tenant:     "Test Tenant",
		RentCents:  100000,
		Commercial: false,
	}
	suite.db.Create(rental)
	return rental
}

// newRouter builds a router authenticated as userID with the real ownership
// middleware in front of the rental routes.
func (suite *RentalHandlerTestSuite) newRouter(userID uint64) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	})

	rentals := r.Group("/api/rentals")
	rentals.GET("", suite.handler.ListRentals)
	rentals.POST("", suite.handler.CreateRental)
	rentals.GET("/:id", middleware.RequireRentalAccess(), suite.handler.GetRental)
	rentals.PATCH("/:id", middleware.RequireRentalAccess(), suite.handler.UpdateRental)
	rentals.POST("/:id/payments", middleware.RequireRentalAccess(), suite.handler.RecordPayment)
	return r
}

func (suite *RentalHandlerTestSuite) do(r *gin.Engine, method, url string, payload any) *httptest.ResponseRecorder {
	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func (suite *RentalHandlerTestSuite) TestCreateRental() {
	user := suite.createTestUser("landlord")
	r := suite.newRouter(user.ID)

	w := suite.do(r, http.MethodPost, "/api/rentals", map[string]any{
		"address":    "1 Main St",
		"tenant":     "Bob",
		"rent_cents": 150000,
		"commercial": false,
	})

	suite.Equal(http.StatusCreated, w.Code)

	var response dto.RentalDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("1 Main St", response.Address)
	suite.EqualValues(150000, response.RentCents)
	suite.Nil(response.LastPaymentAt, "a new rental starts with no payments")
}

func (suite *RentalHandlerTestSuite) TestCreateRental_Validation() {
	user := suite.createTestUser("landlord")
	r := suite.newRouter(user.ID)

	// Missing tenant is rejected at the binding layer.
	w := suite.do(r, http.MethodPost, "/api/rentals", map[string]any{
		"address":    "1 Main St",
		"rent_cents": 150000,
		"commercial": false,
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	// Zero rent is rejected by the service.
	w = suite.do(r, http.MethodPost, "/api/rentals", map[string]any{
		"address":    "1 Main St",
		"tenant":     "Bob",
		"rent_cents": 0,
		"commercial": false,
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	// Nothing was persisted.
	var count int64
	suite.db.Model(&models.Rental{}).Count(&count)
	suite.EqualValues(0, count)
}

func (suite *RentalHandlerTestSuite) TestCreateRental_DollarStringTruncates() {
	user := suite.createTestUser("landlord")
	r := suite.newRouter(user.ID)

	w := suite.do(r, http.MethodPost, "/api/rentals", map[string]any{
		"address":    "1 Main St",
		"tenant":     "Bob",
		"rent":       "1500.509",
		"commercial": true,
	})

	suite.Equal(http.StatusCreated, w.Code)

	var response dto.RentalDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.EqualValues(150050, response.RentCents)
	suite.True(response.Commercial)
}

func (suite *RentalHandlerTestSuite) TestRecordPayment_BackdatedDoesNotRegress() {
	user := suite.createTestUser("alice")
	rental := suite.createTestRental(user.ID, "1 Main St")
	r := suite.newRouter(user.ID)

	t1 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	t0 := t1.Add(-30 * 24 * time.Hour)

	url := fmt.Sprintf("/api/rentals/%d/payments", rental.ID)

	w := suite.do(r, http.MethodPost, url, map[string]any{
		"amount_cents": 150000,
		"paid_at":      t1,
	})
	suite.Equal(http.StatusCreated, w.Code)

	// A back-dated payment is recorded but must not move the ledger backwards.
	w = suite.do(r, http.MethodPost, url, map[string]any{
		"amount_cents": 150000,
		"paid_at":      t0,
	})
	suite.Equal(http.StatusCreated, w.Code)

	var reloaded models.Rental
	suite.Require().NoError(suite.db.First(&reloaded, rental.ID).Error)
	suite.Require().NotNil(reloaded.LastPaymentAt)
	suite.WithinDuration(t1, *reloaded.LastPaymentAt, time.Second)

	w = suite.do(r, http.MethodGet, fmt.Sprintf("/api/rentals/%d", rental.ID), nil)
	suite.Equal(http.StatusOK, w.Code)

	var detail dto.RentalDetailResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &detail))
	suite.EqualValues(300000, detail.TotalPaidCents)
	suite.Len(detail.Payments, 2)
}

func (suite *RentalHandlerTestSuite) TestRecordPayment_AmountMustBePositive() {
	user := suite.createTestUser("alice")
	rental := suite.createTestRental(user.ID, "1 Main St")
	r := suite.newRouter(user.ID)

	url := fmt.Sprintf("/api/rentals/%d/payments", rental.ID)

	for _, amount := range []int64{0, -500} {
		w := suite.do(r, http.MethodPost, url, map[string]any{
			"amount_cents": amount,
		})
		suite.Equal(http.StatusBadRequest, w.Code)
	}

	var count int64
	suite.db.Model(&models.Payment{}).Count(&count)
	suite.EqualValues(0, count)
}

func (suite *RentalHandlerTestSuite) TestRecordPayment_DefaultsToNow() {
	user := suite.createTestUser("alice")
	rental := suite.createTestRental(user.ID, "1 Main St")
	r := suite.newRouter(user.ID)

	before := time.Now()
	w := suite.do(r, http.MethodPost, fmt.Sprintf("/api/rentals/%d/payments", rental.ID), map[string]any{
		"amount": "1500.00",
	})
	suite.Equal(http.StatusCreated, w.Code)

	var response dto.PaymentDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.EqualValues(150000, response.AmountCents)
	suite.False(response.PaidAt.Before(before.Add(-time.Second)))
}

func (suite *RentalHandlerTestSuite) TestGetRental_NoPaymentsSumsToZero() {
	user := suite.createTestUser("alice")
	rental := suite.createTestRental(user.ID, "1 Main St")
	r := suite.newRouter(user.ID)

	w := suite.do(r, http.MethodGet, fmt.Sprintf("/api/rentals/%d", rental.ID), nil)
	suite.Equal(http.StatusOK, w.Code)

	var detail dto.RentalDetailResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &detail))
	suite.EqualValues(0, detail.TotalPaidCents)
	suite.Empty(detail.Payments)
}

func (suite *RentalHandlerTestSuite) TestListRentals_LedgerOrderAndIsolation() {
	alice := suite.createTestUser("alice")
	mallory := suite.createTestUser("mallory")

	recent := suite.createTestRental(alice.ID, "3 Recent Rd")
	neverPaid := suite.createTestRental(alice.ID, "1 Unpaid Ave")
	stale := suite.createTestRental(alice.ID, "2 Stale St")
	suite.createTestRental(mallory.ID, "9 Other Pl")

	older := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)

	_, err := suite.rentalService.RecordPayment(services.RecordPaymentInput{
		RentalID: stale.ID, AmountCents: 50000, PaidAt: &older,
	})
	suite.Require().NoError(err)
	_, err = suite.rentalService.RecordPayment(services.RecordPaymentInput{
		RentalID: recent.ID, AmountCents: 50000, PaidAt: &newer,
	})
	suite.Require().NoError(err)

	r := suite.newRouter(alice.ID)
	w := suite.do(r, http.MethodGet, "/api/rentals", nil)
	suite.Equal(http.StatusOK, w.Code)

	var response dto.RentalListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Rentals, 3, "another user's rentals never appear")

	// Never-paid first, then ascending by last payment time.
	suite.Equal(neverPaid.ID, response.Rentals[0].ID)
	suite.Equal(stale.ID, response.Rentals[1].ID)
	suite.Equal(recent.ID, response.Rentals[2].ID)
}

func (suite *RentalHandlerTestSuite) TestRentalAccess_ForeignRentalLooksMissing() {
	alice := suite.createTestUser("alice")
	mallory := suite.createTestUser("mallory")
	rental := suite.createTestRental(alice.ID, "1 Main St")

	r := suite.newRouter(mallory.ID)

	foreign := suite.do(r, http.MethodGet, fmt.Sprintf("/api/rentals/%d", rental.ID), nil)
	missing := suite.do(r, http.MethodGet, "/api/rentals/424242", nil)

	// Someone else's rental answers exactly like a nonexistent one.
	suite.Equal(http.StatusNotFound, foreign.Code)
	suite.Equal(missing.Code, foreign.Code)
	suite.Equal(missing.Body.String(), foreign.Body.String())
}

func (suite *RentalHandlerTestSuite) TestRecordPayment_ForeignRentalLooksMissing() {
	alice := suite.createTestUser("alice")
	mallory := suite.createTestUser("mallory")
	rental := suite.createTestRental(alice.ID, "1 Main St")

	r := suite.newRouter(mallory.ID)
	w := suite.do(r, http.MethodPost, fmt.Sprintf("/api/rentals/%d/payments", rental.ID), map[string]any{
		"amount_cents": 150000,
	})
	suite.Equal(http.StatusNotFound, w.Code)

	var count int64
	suite.db.Model(&models.Payment{}).Count(&count)
	suite.EqualValues(0, count)
}

func (suite *RentalHandlerTestSuite) TestUpdateRental() {
	user := suite.createTestUser("alice")
	rental := suite.createTestRental(user.ID, "1 Main St")

	tax := int64(240000)
	suite.db.Model(rental).Update("property_tax_annual_cents", tax)

	r := suite.newRouter(user.ID)
	w := suite.do(r, http.MethodPatch, fmt.Sprintf("/api/rentals/%d", rental.ID), map[string]any{
		"tenant":             "Carol",
		"rent_cents":         175000,
		"clear_property_tax": true,
	})
	suite.Equal(http.StatusOK, w.Code)

	var response dto.RentalDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("Carol", response.Tenant)
	suite.EqualValues(175000, response.RentCents)
	suite.Nil(response.PropertyTaxAnnualCents)
	suite.Equal("1 Main St", response.Address, "unspecified fields are untouched")
}

func (suite *RentalHandlerTestSuite) TestUpdateRental_BlankTenantRejected() {
	user := suite.createTestUser("alice")
	rental := suite.createTestRental(user.ID, "1 Main St")

	r := suite.newRouter(user.ID)
	w := suite.do(r, http.MethodPatch, fmt.Sprintf("/api/rentals/%d", rental.ID), map[string]any{
		"tenant": "   ",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

// TestRentalHandlerTestSuite runs the test suite
func TestRentalHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(RentalHandlerTestSuite))
}
