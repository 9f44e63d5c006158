package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"shareit/internal/api/handlers"
	"shareit/internal/dto"
	"shareit/internal/repository/memory"
	"shareit/internal/service"
	"shareit/pkg/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testReward = 10

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	logger := zap.NewNop()
	db := memory.New()

	userService := service.NewUserService(db.Users(), db.Wallets(), logger)
	connService := service.NewConnectionService(db.Connections(), db.Users(), logger)
	businessService := service.NewBusinessService(db.Businesses(), logger)
	recService := service.NewRecommendationService(db.Recommendations(), db.Users(), db.Businesses(), logger)
	offerService := service.NewOfferService(db.SavedOffers(), db.Recommendations(), db.Users(), testReward, logger)

	return SetupRouter(
		handlers.NewUserHandler(userService, connService, logger),
		handlers.NewBusinessHandler(businessService, logger),
		handlers.NewRecommendationHandler(recService, logger),
		handlers.NewOfferHandler(offerService, logger),
		&config.ServerConfig{CORSAllowOrigins: "*"},
		logger,
	)
}

// call sends a request and decodes the JSON response into out when non-nil.
func call(t *testing.T, app *fiber.App, method, path string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func createUser(t *testing.T, app *fiber.App, username string) dto.UserResponse {
	t.Helper()
	var user dto.UserResponse
	status := call(t, app, http.MethodPost, "/api/users", map[string]string{
		"username": username,
		"email":    username + "@example.com",
	}, &user)
	require.Equal(t, http.StatusCreated, status)
	return user
}

func createRecommendation(t *testing.T, app *fiber.App, authorID string) dto.RecommendationResponse {
	t.Helper()
	var business dto.BusinessResponse
	status := call(t, app, http.MethodPost, "/api/businesses", map[string]string{
		"name":     "Harbour Coffee",
		"category": "Cafe",
	}, &business)
	require.Equal(t, http.StatusCreated, status)

	var rec dto.RecommendationResponse
	status = call(t, app, http.MethodPost, "/api/recommendations", map[string]any{
		"userId":     authorID,
		"businessId": business.ID,
		"discount":   10,
		"rating":     5,
	}, &rec)
	require.Equal(t, http.StatusCreated, status)
	return rec
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)

	var body map[string]string
	status := call(t, app, http.MethodGet, "/healthz", nil, &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t)

	var body handlers.ErrorResponse
	status := call(t, app, http.MethodGet, "/api/nope", nil, &body)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", body.Code)
}

func TestUsers(t *testing.T) {
	app := newTestApp(t)
	user := createUser(t, app, "marta")

	t.Run("get", func(t *testing.T) {
		var got dto.UserResponse
		status := call(t, app, http.MethodGet, "/api/users/"+user.ID, nil, &got)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, user, got)
	})

	t.Run("bad id", func(t *testing.T) {
		var body handlers.ErrorResponse
		status := call(t, app, http.MethodGet, "/api/users/not-a-uuid", nil, &body)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "bad_request", body.Code)
	})

	t.Run("missing", func(t *testing.T) {
		status := call(t, app, http.MethodGet, "/api/users/7d1b4b5e-7a43-4a2f-9f1c-2f5a3c1d9e10", nil, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("duplicate username", func(t *testing.T) {
		var body handlers.ErrorResponse
		status := call(t, app, http.MethodPost, "/api/users", map[string]string{
			"username": "marta",
			"email":    "other@example.com",
		}, &body)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "conflict", body.Code)
	})

	t.Run("validation", func(t *testing.T) {
		var body handlers.ErrorResponse
		status := call(t, app, http.MethodPost, "/api/users", map[string]string{
			"username": "x",
			"email":    "not-an-email",
		}, &body)
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Equal(t, "validation_error", body.Code)
		assert.Contains(t, body.Fields, "username")
		assert.Contains(t, body.Fields, "email")
	})

	t.Run("malformed body", func(t *testing.T) {
		status := call(t, app, http.MethodPost, "/api/users", `{"username":`, nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestWallet(t *testing.T) {
	app := newTestApp(t)
	user := createUser(t, app, "ivo")

	var wallet dto.WalletResponse
	status := call(t, app, http.MethodGet, "/api/users/"+user.ID+"/wallet", nil, &wallet)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(0), wallet.Coins)

	status = call(t, app, http.MethodPatch, "/api/users/"+user.ID+"/wallet", map[string]int{"coins": 42}, &wallet)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(42), wallet.Coins)

	status = call(t, app, http.MethodPatch, "/api/users/"+user.ID+"/wallet", map[string]int{"coins": -1}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status = call(t, app, http.MethodPatch, "/api/users/"+user.ID+"/wallet", map[string]any{}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestSaveAndClaimOffer(t *testing.T) {
	app := newTestApp(t)
	author := createUser(t, app, "author")
	saver := createUser(t, app, "saver")
	rec := createRecommendation(t, app, author.ID)

	saveReq := map[string]string{"userId": saver.ID, "recommendationId": rec.ID}

	var first dto.SavedOfferResponse
	status := call(t, app, http.MethodPost, "/api/saved-offers", saveReq, &first)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, first.Saved)
	assert.False(t, first.Claimed)
	assert.Nil(t, first.ClaimedAt)

	var again dto.SavedOfferResponse
	status = call(t, app, http.MethodPost, "/api/saved-offers", saveReq, &again)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, first, again)

	var gotRec dto.RecommendationResponse
	call(t, app, http.MethodGet, "/api/recommendations/"+rec.ID, nil, &gotRec)
	assert.Equal(t, int64(1), gotRec.SavedCount)

	claimPath := "/api/saved-offers/" + first.ID + "/claim"

	var errBody handlers.ErrorResponse
	status = call(t, app, http.MethodPatch, claimPath, map[string]string{"referrerId": saver.ID}, &errBody)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "invalid_referrer", errBody.Code)

	var claimed dto.SavedOfferResponse
	status = call(t, app, http.MethodPatch, claimPath, map[string]string{"referrerId": author.ID}, &claimed)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, claimed.Claimed)
	require.NotNil(t, claimed.ClaimedAt)

	status = call(t, app, http.MethodPatch, claimPath, map[string]string{"referrerId": author.ID}, &errBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "already_claimed", errBody.Code)

	var wallet dto.WalletResponse
	call(t, app, http.MethodGet, "/api/users/"+author.ID+"/wallet", nil, &wallet)
	assert.Equal(t, int64(testReward), wallet.Coins)

	var rewards []dto.RewardResponse
	status = call(t, app, http.MethodGet, "/api/users/"+author.ID+"/rewards", nil, &rewards)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, rewards, 1)
	assert.Equal(t, first.ID, rewards[0].SavedOfferID)

	var offers []dto.SavedOfferResponse
	status = call(t, app, http.MethodGet, "/api/saved-offers?userId="+saver.ID, nil, &offers)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, offers, 1)
	assert.True(t, offers[0].Claimed)
}

func TestSavedOfferErrors(t *testing.T) {
	app := newTestApp(t)
	user := createUser(t, app, "lena")
	const missing = "0b9c7a1e-2d3f-4e5a-8b6c-7d8e9f0a1b2c"

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"list without userId", http.MethodGet, "/api/saved-offers", nil, http.StatusBadRequest, "bad_request"},
		{"list with bad userId", http.MethodGet, "/api/saved-offers?userId=42", nil, http.StatusBadRequest, "bad_request"},
		{"save missing recommendation", http.MethodPost, "/api/saved-offers",
			map[string]string{"userId": user.ID, "recommendationId": missing}, http.StatusNotFound, "not_found"},
		{"save without ids", http.MethodPost, "/api/saved-offers", map[string]string{}, http.StatusUnprocessableEntity, "validation_error"},
		{"claim missing offer", http.MethodPatch, "/api/saved-offers/" + missing + "/claim",
			map[string]string{"referrerId": user.ID}, http.StatusNotFound, "not_found"},
		{"claim bad offer id", http.MethodPatch, "/api/saved-offers/abc/claim",
			map[string]string{"referrerId": user.ID}, http.StatusBadRequest, "bad_request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body handlers.ErrorResponse
			status := call(t, app, tt.method, tt.path, tt.body, &body)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestListSavedOffersEmpty(t *testing.T) {
	app := newTestApp(t)
	user := createUser(t, app, "nobody")

	var offers []dto.SavedOfferResponse
	status := call(t, app, http.MethodGet, "/api/saved-offers?userId="+user.ID, nil, &offers)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, offers)
}

func TestRecommendationsAndBusinesses(t *testing.T) {
	app := newTestApp(t)
	author := createUser(t, app, "writer")
	rec := createRecommendation(t, app, author.ID)

	var businesses []dto.BusinessResponse
	status := call(t, app, http.MethodGet, "/api/businesses?q=harbour", nil, &businesses)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, businesses, 1)
	assert.Equal(t, rec.BusinessID, businesses[0].ID)

	status = call(t, app, http.MethodGet, "/api/businesses?q=bakery", nil, &businesses)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, businesses)

	var recs []dto.RecommendationResponse
	status = call(t, app, http.MethodGet, "/api/recommendations?userId="+author.ID, nil, &recs)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, recs, 1)
	assert.Equal(t, "Harbour Coffee", recs[0].BusinessName)

	status = call(t, app, http.MethodGet, "/api/recommendations?businessId=zzz", nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	var viewed dto.RecommendationResponse
	status = call(t, app, http.MethodPost, "/api/recommendations/"+rec.ID+"/views", nil, &viewed)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), viewed.ViewCount)

	status = call(t, app, http.MethodPost, "/api/recommendations", map[string]any{
		"userId":     author.ID,
		"businessId": rec.BusinessID,
		"rating":     9,
	}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestConnections(t *testing.T) {
	app := newTestApp(t)
	a := createUser(t, app, "first")
	b := createUser(t, app, "second")

	var conn dto.ConnectionResponse
	status := call(t, app, http.MethodPost, "/api/connections", map[string]string{
		"userId": a.ID, "connectedUserId": b.ID,
	}, &conn)
	require.Equal(t, http.StatusCreated, status)

	status = call(t, app, http.MethodPost, "/api/connections", map[string]string{
		"userId": a.ID, "connectedUserId": b.ID,
	}, nil)
	assert.Equal(t, http.StatusConflict, status)

	status = call(t, app, http.MethodPost, "/api/connections", map[string]string{
		"userId": a.ID, "connectedUserId": a.ID,
	}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	var conns []dto.ConnectionResponse
	status = call(t, app, http.MethodGet, "/api/users/"+a.ID+"/connections", nil, &conns)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, conns, 1)
	assert.Equal(t, b.ID, conns[0].ConnectedUserID)
}
