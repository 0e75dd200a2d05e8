// Copyright (c) 2025-2026 DriverMind Ltda.
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/drivermind/dmweb/internal/test/dbcontainer"
	"github.com/drivermind/dmweb/pkg/adapter/config"
	"github.com/drivermind/dmweb/pkg/adapter/db/postgres"
	"github.com/drivermind/dmweb/pkg/adapter/db/postgres/schemarp"
	"github.com/drivermind/dmweb/pkg/adapter/restful/gin"
	"github.com/drivermind/dmweb/pkg/adapter/restful/gin/routes"
	"github.com/drivermind/dmweb/pkg/core/repo"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

const webhookSecret = "whsec_gin_test"

type IntegrationGinTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pg   *sqltestutil.PostgresContainer
	Pool *postgres.Pool
	Gin  *gin.Engine

	DriverID    uuid.UUID
	DriverToken string

	// LastMeta holds the user_metadata object of the most recent
	// admin update received by the identity service stub.
	LastMeta map[string]any
	// CheckoutForm holds the form of the most recent checkout
	// session request received by the payment service stub.
	CheckoutForm map[string][]string
}

func TestIntegrationGinTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &IntegrationGinTestSuite{
		Ctx:  ctx,
		Pg:   pg,
		Pool: pool,
	})
}

func (igts *IntegrationGinTestSuite) SetupSuite() {
	err := igts.Pool.Conn(
		igts.Ctx, func(ctx context.Context, c repo.Conn) error {
			return schemarp.CreateTables(ctx, c.(*postgres.Conn))
		},
	)
	igts.Require().NoError(err, "failed to create schema contents")

	igts.DriverID = uuid.New()
	igts.DriverToken = "tok-" + uuid.NewString()
	idSrv := httptest.NewServer(http.HandlerFunc(igts.identityStub))
	igts.T().Cleanup(idSrv.Close)
	paySrv := httptest.NewServer(http.HandlerFunc(igts.paymentStub))
	igts.T().Cleanup(paySrv.Close)

	igts.T().Setenv(config.EnvDBPassword, "svc-pass")
	igts.T().Setenv(config.EnvDBAdminPassword, "admin-pass")
	igts.T().Setenv(config.EnvIdentityKey, "id-service-key")
	igts.T().Setenv(config.EnvBillingKey, "sk_test_key")
	igts.T().Setenv(config.EnvWebhookSecret, webhookSecret)
	path := filepath.Join(igts.T().TempDir(), "config.yaml")
	body := fmt.Sprintf(`database:
  name: dmweb
gin:
  logger: false
  recovery: true
identity:
  base-url: %s
billing:
  base-url: %s
  price-id: price_test_monthly
  success-url: https://app.test/billing/success
  cancel-url: https://app.test/billing/cancel
`, idSrv.URL, paySrv.URL)
	err = os.WriteFile(path, []byte(body), 0o600)
	igts.Require().NoError(err, "cannot write config file")
	c, err := config.Load(path)
	igts.Require().NoError(err, "cannot load configuration")

	igts.Gin = gin.New(gin.Recovery())
	igts.Require().NotNil(igts.Gin, "cannot instantiate Gin engine")
	err = routes.Register(igts.Gin, igts.Pool, c)
	igts.Require().NoError(err, "failed to register Gin routes")
}

// identityStub emulates the hosted identity service: token resolution
// for the one known driver and admin metadata updates.
func (igts *IntegrationGinTestSuite) identityStub(
	w http.ResponseWriter, r *http.Request,
) {
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/user":
		auth := r.Header.Get("Authorization")
		if auth != "Bearer "+igts.DriverToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":    igts.DriverID,
			"email": "carlos@drivermind.test",
			"user_metadata": map[string]any{
				"display_name":        "Carlos",
				"daily_goal":          20000,
				"monthly_goal":        400000,
				"subscription_status": "none",
			},
		})
	case r.Method == http.MethodPut &&
		r.URL.Path == "/admin/users/"+igts.DriverID.String():
		if r.Header.Get("Authorization") != "Bearer id-service-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var body struct {
			Meta map[string]any `json:"user_metadata"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		igts.LastMeta = body.Meta
		w.Write([]byte("{}"))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// paymentStub emulates the payment provider's checkout session API.
func (igts *IntegrationGinTestSuite) paymentStub(
	w http.ResponseWriter, r *http.Request,
) {
	if r.Method != http.MethodPost ||
		r.URL.Path != "/v1/checkout/sessions" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	igts.CheckoutForm = r.PostForm
	json.NewEncoder(w).Encode(map[string]any{
		"url": "https://pay.test/cs_test_123",
	})
}

// sendJSON runs one request against the engine, optionally with a
// JSON body and a bearer token, and decodes the JSON response into
// res when it is not nil.
func (igts *IntegrationGinTestSuite) sendJSON(
	method, path string, body any, token string, res any,
) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		igts.Require().NoError(err, "cannot marshal request body")
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	igts.Require().NoError(err, "cannot create request")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	igts.Gin.ServeHTTP(w, req)
	if res != nil {
		igts.Require().NoError(
			json.Unmarshal(w.Body.Bytes(), res),
			"body is not json: %s", w.Body.String(),
		)
	}
	return w
}

func (igts *IntegrationGinTestSuite) TestUnauthenticated() {
	w := igts.sendJSON(
		http.MethodGet, "/api/dmweb/v1/days/today", nil, "", nil,
	)
	igts.Equal(401, w.Code)

	w = igts.sendJSON(
		http.MethodGet, "/api/dmweb/v1/days/today", nil,
		"tok-unknown", nil,
	)
	igts.Equal(401, w.Code)
}

func (igts *IntegrationGinTestSuite) TestDayLifecycle() {
	vehicle := &struct {
		ID uuid.UUID
	}{}
	w := igts.sendJSON(
		http.MethodPost, "/api/dmweb/v1/vehicles", map[string]any{
			"name":       "Onix",
			"propulsion": "combustion",
		}, igts.DriverToken, vehicle,
	)
	igts.Require().Equal(201, w.Code, "cannot add vehicle")

	start := &struct {
		Outcome string
		Day     struct {
			ID     uuid.UUID
			Status string
		}
	}{}
	body := map[string]any{
		"vehicle_id": vehicle.ID.String(),
		"km_start":   100,
	}
	w = igts.sendJSON(
		http.MethodPost, "/api/dmweb/v1/days", body,
		igts.DriverToken, start,
	)
	igts.Require().Equal(201, w.Code, "cannot start work day")
	igts.Equal("created", start.Outcome)
	igts.Equal("open", start.Day.Status)
	dayID := start.Day.ID

	// starting again with the same vehicle resumes the open day
	w = igts.sendJSON(
		http.MethodPost, "/api/dmweb/v1/days", body,
		igts.DriverToken, start,
	)
	igts.Require().Equal(200, w.Code)
	igts.Equal("resumed", start.Outcome)
	igts.Equal(dayID, start.Day.ID)

	w = igts.sendJSON(
		http.MethodPost, "/api/dmweb/v1/earnings", map[string]any{
			"amount":   "120,50",
			"platform": "uber",
			"currency": "BRL",
		}, igts.DriverToken, nil,
	)
	igts.Require().Equal(201, w.Code, "cannot add earning")
	w = igts.sendJSON(
		http.MethodPost, "/api/dmweb/v1/expenses", map[string]any{
			"amount":   "30.25",
			"category": "fuel",
			"currency": "BRL",
		}, igts.DriverToken, nil,
	)
	igts.Require().Equal(201, w.Code, "cannot add expense")

	res := &struct {
		Board struct {
			Day struct {
				ID     uuid.UUID
				Status string
			}
			Earnings []struct {
				Amount int64
			}
			Expenses []struct {
				Amount int64
			}
			Income map[string]int64
			Profit map[string]int64
		}
		GoalProgress float64 `json:"goal_progress"`
	}{}
	w = igts.sendJSON(
		http.MethodGet, "/api/dmweb/v1/days/today", nil,
		igts.DriverToken, res,
	)
	igts.Require().Equal(200, w.Code, "cannot load day board")
	board := res.Board
	igts.Equal(dayID, board.Day.ID)
	igts.Require().Len(board.Earnings, 1)
	igts.Equal(int64(12050), board.Earnings[0].Amount)
	igts.Require().Len(board.Expenses, 1)
	igts.Equal(int64(3025), board.Expenses[0].Amount)
	igts.Equal(int64(12050), board.Income["BRL"])
	igts.Equal(int64(9025), board.Profit["BRL"])
	// 90.25 BRL against the 200.00 BRL daily goal
	igts.InDelta(0.45125, res.GoalProgress, 1e-9)

	day := &struct {
		Status string
		KmEnd  *float64
	}{}
	w = igts.sendJSON(
		http.MethodPatch, "/api/dmweb/v1/days/"+dayID.String(),
		map[string]any{"op": "end", "km_end": 180},
		igts.DriverToken, day,
	)
	igts.Require().Equal(200, w.Code, "cannot end work day")
	igts.Equal("closed", day.Status)
	igts.Require().NotNil(day.KmEnd)
	igts.Equal(180.0, *day.KmEnd)

	history := &struct {
		Months []struct {
			Label     string
			Km        float64
			Profit    map[string]int64
			CostPerKm map[string]float64 `json:"cost_per_km"`
		}
	}{}
	w = igts.sendJSON(
		http.MethodGet, "/api/dmweb/v1/history", nil,
		igts.DriverToken, history,
	)
	igts.Require().Equal(200, w.Code, "cannot load history")
	igts.Require().Len(history.Months, 1)
	igts.Equal(
		time.Now().Format("January 2006"), history.Months[0].Label,
	)
	igts.Equal(80.0, history.Months[0].Km)
	igts.Equal(int64(9025), history.Months[0].Profit["BRL"])
	// 30.25 BRL of costs over 80 km
	igts.InDelta(0.378125, history.Months[0].CostPerKm["BRL"], 1e-9)

	w = igts.sendJSON(
		http.MethodPatch, "/api/dmweb/v1/days/"+dayID.String(),
		map[string]any{"op": "reopen"}, igts.DriverToken, day,
	)
	igts.Require().Equal(200, w.Code, "cannot reopen work day")
	igts.Equal("open", day.Status)
	igts.Nil(day.KmEnd, "reopening must clear km_end")

	w = igts.sendJSON(
		http.MethodDelete, "/api/dmweb/v1/days/"+dayID.String(),
		nil, igts.DriverToken, nil,
	)
	igts.Require().Equal(204, w.Code, "cannot delete work day")

	w = igts.sendJSON(
		http.MethodGet, "/api/dmweb/v1/days/today", nil,
		igts.DriverToken, nil,
	)
	igts.Equal(404, w.Code, "deleted day must be gone")
}

func (igts *IntegrationGinTestSuite) TestBadRequest() {
	errs := map[string][]string{}
	w := igts.sendJSON(
		http.MethodPost, "/api/dmweb/v1/days", map[string]any{
			"vehicle_id": "not-a-uuid",
		}, igts.DriverToken, &errs,
	)
	igts.Equal(400, w.Code)
	igts.Contains(errs, "vehicle_id")

	errs = map[string][]string{}
	w = igts.sendJSON(
		http.MethodPatch,
		"/api/dmweb/v1/days/"+uuid.NewString(),
		map[string]any{"op": "end"}, igts.DriverToken, &errs,
	)
	igts.Equal(400, w.Code)
	igts.Contains(errs, "km_end")

	errs = map[string][]string{}
	w = igts.sendJSON(
		http.MethodPost, "/api/dmweb/v1/earnings", map[string]any{
			"amount":   "12,3,4",
			"platform": "walking",
			"currency": "BRL",
		}, igts.DriverToken, &errs,
	)
	igts.Equal(400, w.Code)
	igts.Contains(errs, "amount")
	igts.Contains(errs, "platform")
}

func (igts *IntegrationGinTestSuite) TestProfile() {
	profile := &struct {
		ID      uuid.UUID
		Email   string
		Profile struct {
			DisplayName string `json:"display_name"`
			DailyGoal   int64  `json:"daily_goal"`
			Subscribed  bool   `json:"subscribed"`
		}
	}{}
	w := igts.sendJSON(
		http.MethodGet, "/api/dmweb/v1/profile", nil,
		igts.DriverToken, profile,
	)
	igts.Require().Equal(200, w.Code, "cannot load profile")
	igts.Equal(igts.DriverID, profile.ID)
	igts.Equal("carlos@drivermind.test", profile.Email)
	igts.Equal("Carlos", profile.Profile.DisplayName)
	igts.Equal(int64(20000), profile.Profile.DailyGoal)
	igts.False(profile.Profile.Subscribed)

	w = igts.sendJSON(
		http.MethodPut, "/api/dmweb/v1/profile", map[string]any{
			"display_name": "Carlos Silva",
			"daily_goal":   "250",
			"monthly_goal": "5000",
		}, igts.DriverToken, profile,
	)
	igts.Require().Equal(200, w.Code, "cannot update profile")
	igts.Equal("Carlos Silva", profile.Profile.DisplayName)
	igts.Equal(int64(25000), profile.Profile.DailyGoal)
	igts.Require().NotNil(igts.LastMeta)
	igts.Equal("Carlos Silva", igts.LastMeta["display_name"])
	igts.Equal("none", igts.LastMeta["subscription_status"])
}

func (igts *IntegrationGinTestSuite) TestBilling() {
	checkout := &struct {
		URL string `json:"url"`
	}{}
	w := igts.sendJSON(
		http.MethodPost, "/api/dmweb/v1/billing/checkout",
		map[string]any{}, igts.DriverToken, checkout,
	)
	igts.Require().Equal(200, w.Code, "cannot create checkout")
	igts.Equal("https://pay.test/cs_test_123", checkout.URL)
	igts.Require().NotNil(igts.CheckoutForm)
	igts.Equal(
		[]string{"price_test_monthly"},
		igts.CheckoutForm["line_items[0][price]"],
	)
	igts.Equal(
		[]string{igts.DriverID.String()},
		igts.CheckoutForm["metadata[user_id]"],
	)

	payload, err := json.Marshal(map[string]any{
		"id":   "evt_1",
		"type": "checkout.session.completed",
		"data": map[string]any{
			"object": map[string]any{
				"id": "cs_test_123",
				"metadata": map[string]string{
					"user_id": igts.DriverID.String(),
				},
			},
		},
	})
	igts.Require().NoError(err, "cannot marshal event")

	igts.LastMeta = nil
	w = igts.postWebhook(payload, signEvent(payload, webhookSecret))
	igts.Require().Equal(200, w.Code, "webhook rejected")
	igts.Require().NotNil(igts.LastMeta)
	igts.Equal("active", igts.LastMeta["subscription_status"])

	igts.LastMeta = nil
	w = igts.postWebhook(payload, signEvent(payload, "wrong-secret"))
	igts.Equal(400, w.Code, "forged signature must be rejected")
	igts.Nil(igts.LastMeta)

	invoice, err := json.Marshal(map[string]any{
		"id":   "evt_2",
		"type": "invoice.payment_succeeded",
		"data": map[string]any{
			"object": map[string]any{
				"id": "in_test_456",
				"metadata": map[string]string{
					"user_id": igts.DriverID.String(),
				},
			},
		},
	})
	igts.Require().NoError(err, "cannot marshal event")
	w = igts.postWebhook(invoice, signEvent(invoice, webhookSecret))
	igts.Require().Equal(200, w.Code, "invoice webhook rejected")
	igts.Require().NotNil(igts.LastMeta)
	igts.Equal("active", igts.LastMeta["subscription_status"])

	igts.LastMeta = nil
	other, err := json.Marshal(map[string]any{
		"id":   "evt_3",
		"type": "customer.created",
		"data": map[string]any{"object": map[string]any{}},
	})
	igts.Require().NoError(err, "cannot marshal event")
	w = igts.postWebhook(other, signEvent(other, webhookSecret))
	igts.Equal(200, w.Code, "unknown events are acknowledged")
	igts.Nil(igts.LastMeta)
}

func (igts *IntegrationGinTestSuite) postWebhook(
	payload []byte, signature string,
) *httptest.ResponseRecorder {
	req, err := http.NewRequest(
		http.MethodPost, "/api/dmweb/v1/billing/webhook",
		bytes.NewReader(payload),
	)
	igts.Require().NoError(err, "cannot create webhook request")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Webhook-Signature", signature)
	w := httptest.NewRecorder()
	igts.Gin.ServeHTTP(w, req)
	return w
}

func signEvent(payload []byte, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	return fmt.Sprintf(
		"t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)),
	)
}
