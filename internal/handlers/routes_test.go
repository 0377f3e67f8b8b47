package handlers_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/bcv_rates/internal/apperrors"
	"github.com/SscSPs/bcv_rates/internal/core/domain"
	portssvc "github.com/SscSPs/bcv_rates/internal/core/ports/services"
	"github.com/SscSPs/bcv_rates/internal/dto"
	"github.com/SscSPs/bcv_rates/internal/handlers"
	"github.com/SscSPs/bcv_rates/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

// RoutesTestSuite drives the full router with mocked services.
type RoutesTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockRates       *MockExchangeRateService
	mockRefresh     *MockRefreshService
	mockCustomRates *MockCustomRateService
}

func (suite *RoutesTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockRates = new(MockExchangeRateService)
	suite.mockRefresh = new(MockRefreshService)
	suite.mockCustomRates = new(MockCustomRateService)

	cfg := &config.Config{JWTSecret: testJWTSecret, IsProduction: true}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		ExchangeRate: suite.mockRates,
		Refresh:      suite.mockRefresh,
		CustomRate:   suite.mockCustomRates,
	}, nil, nil, nil)
}

// generateTestToken creates a signed JWT for the given user.
func (suite *RoutesTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	suite.Require().NoError(err)
	return signed
}

func (suite *RoutesTestSuite) do(method, path, body, userID string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *RoutesTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", "", "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *RoutesTestSuite) TestGetLatestRates() {
	validAt := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	suite.mockRates.On("GetLatestRates", mock.Anything).Return(domain.LatestRates{
		USD: &domain.RateSnapshot{Currency: domain.USD, ValidAt: validAt, Rate: decimal.RequireFromString("330.3751"), FetchedAt: validAt},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/latest", "", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"rate":"330.3751"`)
	suite.Contains(w.Body.String(), `"EUR":null`)
}

func (suite *RoutesTestSuite) TestGetLatestRates_ServerErrorIsMasked() {
	suite.mockRates.On("GetLatestRates", mock.Anything).
		Return(domain.LatestRates{}, apperrors.NewPersistenceError("failed to get latest rate", errors.New("password authentication failed"))).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/latest", "", "")

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "password")
}

func (suite *RoutesTestSuite) TestGetHistory() {
	suite.mockRates.On("GetHistory", mock.Anything, "USD", 2).Return([]domain.HistoricalRate{
		{Currency: domain.USD, Date: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), Rate: decimal.RequireFromString("330.3751")},
		{Currency: domain.USD, Date: time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC), Rate: decimal.RequireFromString("329.1")},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/history?currency=USD&limit=2", "", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[{"date":"2025-01-15","rate":"330.3751"},{"date":"2025-01-14","rate":"329.1"}]`, w.Body.String())
}

func (suite *RoutesTestSuite) TestGetHistory_InvalidQuery() {
	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/history?currency=USD&limit=1000", "", "")
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/exchange-rates/history", "", "")
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRates.AssertNotCalled(suite.T(), "GetHistory", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RoutesTestSuite) TestConvert() {
	query := dto.ConvertQuery{Currency: "USD", Amount: "1.234,50", Direction: "to_ves"}
	suite.mockRates.On("Convert", mock.Anything, query).Return(&domain.Conversion{
		Currency:  domain.USD,
		Direction: domain.ToVES,
		Rate:      decimal.RequireFromString("40"),
		Amount:    decimal.RequireFromString("1234.5"),
		Result:    decimal.RequireFromString("49380"),
		ValidAt:   time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/convert?currency=USD&amount=1.234,50&direction=to_ves", "", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"result":"49380"`)
	suite.Contains(w.Body.String(), `"validAt":"2025-01-15"`)
}

func (suite *RoutesTestSuite) TestConvert_Errors() {
	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/convert?currency=USD&amount=1&direction=up", "", "")
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.mockRates.On("Convert", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewNotFoundError("No EUR rate has been published yet")).Once()
	w = suite.do(http.MethodGet, "/api/v1/exchange-rates/convert?currency=EUR&amount=1", "", "")
	suite.Equal(http.StatusNotFound, w.Code)
	suite.JSONEq(`{"error":"No EUR rate has been published yet"}`, w.Body.String())
}

func (suite *RoutesTestSuite) TestRefresh_RequiresAuth() {
	w := suite.do(http.MethodPost, "/api/v1/exchange-rates/refresh", "", "")
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockRefresh.AssertNotCalled(suite.T(), "Run", mock.Anything, mock.Anything)
}

func (suite *RoutesTestSuite) TestRefresh() {
	suite.mockRefresh.On("Run", mock.Anything, domain.TriggerManual).Return(domain.RefreshOutcome{
		Trigger: domain.TriggerManual,
		Stage:   domain.StageSucceeded,
		ValidAt: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		USD:     decimal.RequireFromString("330.3751"),
		EUR:     decimal.RequireFromString("391.9"),
	}).Once()

	w := suite.do(http.MethodPost, "/api/v1/exchange-rates/refresh", "", "user-1")

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"stage":"succeeded"`)
	suite.Contains(w.Body.String(), `"USD":"330.3751"`)
}

func (suite *RoutesTestSuite) TestRefresh_FailedCycle() {
	suite.mockRefresh.On("Run", mock.Anything, domain.TriggerManual).Return(domain.RefreshOutcome{
		Trigger:     domain.TriggerManual,
		Stage:       domain.StageFailed,
		FailedStage: domain.StageFetching,
		Err:         errors.New("fetch https://www.bcv.org.ve/: timeout"),
	}).Once()

	w := suite.do(http.MethodPost, "/api/v1/exchange-rates/refresh", "", "user-1")

	suite.Equal(http.StatusBadGateway, w.Code)
	suite.Contains(w.Body.String(), `"failedStage":"fetching"`)
}

func (suite *RoutesTestSuite) TestCustomRates_RequireAuth() {
	w := suite.do(http.MethodGet, "/api/v1/custom-rates", "", "")
	suite.Equal(http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/custom-rates", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	suite.Equal(http.StatusUnauthorized, rec.Code)
}

func (suite *RoutesTestSuite) TestListCustomRates() {
	created := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	suite.mockCustomRates.On("ListCustomRates", mock.Anything, "user-1").Return([]domain.UserCustomRate{
		{ID: "a", UserID: "user-1", Label: "PARALELO", Rate: decimal.RequireFromString("345.2"), Timestamps: domain.Timestamps{CreatedAt: created, UpdatedAt: created}},
	}, nil).Once()
	suite.mockCustomRates.On("MaxPerUser").Return(10)

	w := suite.do(http.MethodGet, "/api/v1/custom-rates", "", "user-1")

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"maxPerUser":10`)
	suite.Contains(w.Body.String(), `"label":"PARALELO"`)
	suite.Contains(w.Body.String(), `"rate":"345.2"`)
}

func (suite *RoutesTestSuite) TestCreateCustomRate() {
	req := dto.CreateCustomRateRequest{Label: "usdt", Rate: "36,5"}
	suite.mockCustomRates.On("CreateCustomRate", mock.Anything, "user-1", req).Return(&domain.UserCustomRate{
		ID: "id-1", UserID: "user-1", Label: "USDT", Rate: decimal.RequireFromString("36.5"),
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/custom-rates", `{"label":"usdt","rate":"36,5"}`, "user-1")

	suite.Equal(http.StatusCreated, w.Code)
	suite.Contains(w.Body.String(), `"label":"USDT"`)
}

func (suite *RoutesTestSuite) TestCreateCustomRate_InvalidLabelRejectedAtBinding() {
	w := suite.do(http.MethodPost, "/api/v1/custom-rates", `{"label":"US$","rate":"10"}`, "user-1")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCustomRates.AssertNotCalled(suite.T(), "CreateCustomRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RoutesTestSuite) TestCreateCustomRate_ServiceErrors() {
	testCases := []struct {
		err    error
		status int
	}{
		{apperrors.NewValidationError("Invalid rate value"), http.StatusBadRequest},
		{apperrors.NewForbiddenError("You can only save up to 10 custom rates."), http.StatusForbidden},
		{apperrors.NewConflictError("You already have a custom rate with that label."), http.StatusConflict},
	}
	suite.mockCustomRates.On("MaxPerUser").Return(10)
	for _, tc := range testCases {
		suite.Run(fmt.Sprint(tc.status), func() {
			suite.mockCustomRates.On("CreateCustomRate", mock.Anything, "user-1", mock.Anything).Return(nil, tc.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/custom-rates", `{"label":"USDT","rate":"0"}`, "user-1")

			suite.Equal(tc.status, w.Code)
			var appErr *apperrors.AppError
			suite.Require().ErrorAs(tc.err, &appErr)
			suite.JSONEq(fmt.Sprintf(`{"error":%q}`, appErr.Message), w.Body.String())
		})
	}
}

func (suite *RoutesTestSuite) TestUpdateCustomRate() {
	rate := "350"
	suite.mockCustomRates.On("UpdateCustomRate", mock.Anything, "user-1", "id-1", dto.UpdateCustomRateRequest{Rate: &rate}).
		Return(&domain.UserCustomRate{ID: "id-1", Label: "USDT", Rate: decimal.RequireFromString("350")}, nil).Once()

	w := suite.do(http.MethodPatch, "/api/v1/custom-rates/id-1", `{"rate":"350"}`, "user-1")

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"rate":"350"`)
}

func (suite *RoutesTestSuite) TestUpdateCustomRate_NotFound() {
	suite.mockCustomRates.On("UpdateCustomRate", mock.Anything, "user-1", "missing", mock.Anything).
		Return(nil, apperrors.NewNotFoundError("Custom rate not found.")).Once()

	w := suite.do(http.MethodPatch, "/api/v1/custom-rates/missing", `{"label":"otro"}`, "user-1")

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *RoutesTestSuite) TestDeleteCustomRate() {
	suite.mockCustomRates.On("DeleteCustomRate", mock.Anything, "user-1", "id-1").Return(nil).Once()
	suite.mockCustomRates.On("DeleteCustomRate", mock.Anything, "user-1", "id-2").
		Return(apperrors.NewNotFoundError("Custom rate not found.")).Once()

	w := suite.do(http.MethodDelete, "/api/v1/custom-rates/id-1", "", "user-1")
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"ok":true}`, w.Body.String())

	w = suite.do(http.MethodDelete, "/api/v1/custom-rates/id-2", "", "user-1")
	suite.Equal(http.StatusNotFound, w.Code)
}

func TestRoutesTestSuite(t *testing.T) {
	suite.Run(t, new(RoutesTestSuite))
}
