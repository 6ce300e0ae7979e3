package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"serenestays/internal/api/controllers"
	"serenestays/internal/config"
	"serenestays/internal/models/db_models"
	"serenestays/internal/repositories"
	"serenestays/internal/services"
	mem "serenestays/pkg/memcache"
	"serenestays/pkg/middleware"
	"serenestays/pkg/utils"
)

type testApp struct {
	engine *gin.Engine
	store   *repositories.MemoryStore
	tokens  *utils.TokenManager
	revoked *mem.RevokedTokens
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := &config.Config{
		GinMode:        gin.TestMode,
		TokenSecret:    "test-secret",
		TokenTTL:       time.Hour,
		CookieSecure:   true,
		AllowedOrigins: []string{"http://localhost:5173"},
	}
	logger := zap.NewNop()
	store := repositories.NewMemoryStore()
	tokens := utils.NewTokenManager(cfg.TokenSecret, cfg.TokenTTL)
	revoked := mem.NewRevokedTokens()

	engine := ProvideRouter(cfg, logger, tokens, revoked,
		controllers.NewAuthController(tokens, revoked, controllers.CookieOptions{Secure: cfg.CookieSecure}, logger),
		controllers.NewRoomController(services.NewRoomService(store.Collection(db_models.RoomsCollection))),
		controllers.NewBookingController(services.NewBookingService(store.Collection(db_models.BookingsCollection))),
		controllers.NewUserController(services.NewUserService(store.Collection(db_models.UsersCollection))),
		controllers.NewSubscriptionController(services.NewSubscriptionService(store.Collection(db_models.SubscriptionsCollection))),
	)

	return &testApp{engine: engine, store: store, tokens: tokens, revoked: revoked}
}

func (a *testApp) do(t *testing.T, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, r)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func tokenCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.TokenCookie {
			return c
		}
	}
	t.Fatal("token cookie not set")
	return nil
}

func TestLiveness(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, "GET", "/", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "Serene-Stays server is running") {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestUserSignupAndLookup(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, "POST", "/users", `{"email":"a@x.com","name":"Ann"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	ack := decode[map[string]interface{}](t, w)
	if ack["acknowledged"] != true || ack["insertedId"] == "" {
		t.Errorf("ack = %v", ack)
	}

	w = app.do(t, "GET", "/users?email=a@x.com", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	user := decode[map[string]interface{}](t, w)
	if user["email"] != "a@x.com" || user["name"] != "Ann" || user["_id"] != ack["insertedId"] {
		t.Errorf("user = %v", user)
	}

	w = app.do(t, "GET", "/users?email=nobody@x.com", "")
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "null" {
		t.Errorf("unknown user: status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestLookupsRequireQueryValue(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		path    string
		message string
	}{
		{"/users", "Email is required!"},
		{"/users?email=", "Email is required!"},
		{"/users?mail=a@x.com", "Email is required!"},
		{"/subscribe?email=", "Email is required!"},
		{"/bookings-date?id=", "Room id is required"},
	}
	for _, tt := range tests {
		w := app.do(t, "GET", tt.path, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want %d", tt.path, w.Code, http.StatusBadRequest)
			continue
		}
		body := decode[utils.APIResponse](t, w)
		if body.Message != tt.message || body.TraceID == "" {
			t.Errorf("%s: body = %+v", tt.path, body)
		}
	}
}

func TestUserLookupDecodesQuery(t *testing.T) {
	app := newTestApp(t)

	if w := app.do(t, "POST", "/users", `{"email":"a+b@x.com"}`); w.Code != http.StatusOK {
		t.Fatalf("create status = %d", w.Code)
	}
	user := decode[map[string]interface{}](t, app.do(t, "GET", "/users?email=a%2Bb%40x.com", ""))
	if user["email"] != "a+b@x.com" {
		t.Errorf("user = %v", user)
	}
}

func TestBookingDatesForRoom(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, "POST", "/bookings", `{"roomId":"R1","email":"a@x.com","bookedDate":"2024-01-01"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	app.do(t, "POST", "/bookings", `{"roomId":"R2","email":"a@x.com","bookedDate":"2024-05-05"}`)

	w = app.do(t, "GET", "/bookings-date?id=R1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	dates := decode[[]map[string]interface{}](t, w)
	if len(dates) != 1 || dates[0]["bookedDate"] != "2024-01-01" {
		t.Errorf("dates = %v", dates)
	}
	if _, ok := dates[0]["email"]; ok {
		t.Error("projection should hide email")
	}

	w = app.do(t, "GET", "/bookings-date", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing id: status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestProtectedBookingsFlow(t *testing.T) {
	app := newTestApp(t)
	app.do(t, "POST", "/bookings", `{"roomId":"R1","email":"a@x.com","bookedDate":"2024-01-01"}`)
	app.do(t, "POST", "/bookings", `{"roomId":"R2","email":"a@x.com","bookedDate":"2024-02-02"}`)
	app.do(t, "POST", "/bookings", `{"roomId":"R3","email":"b@y.com","bookedDate":"2024-03-03"}`)

	w := app.do(t, "POST", "/jwt", `{"email":"a@x.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("jwt status = %d", w.Code)
	}
	if ack := decode[map[string]interface{}](t, w); ack["success"] != true {
		t.Errorf("jwt body = %v", ack)
	}
	cookie := tokenCookie(t, w)
	if !cookie.HttpOnly || !cookie.Secure || cookie.SameSite != http.SameSiteNoneMode {
		t.Errorf("cookie attributes = %+v", cookie)
	}
	if cookie.MaxAge != int(time.Hour.Seconds()) {
		t.Errorf("cookie max-age = %d", cookie.MaxAge)
	}

	w = app.do(t, "GET", "/bookings?email=a@x.com", "", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("own bookings status = %d, body = %s", w.Code, w.Body.String())
	}
	mine := decode[[]map[string]interface{}](t, w)
	if len(mine) != 2 || mine[0]["roomId"] != "R2" || mine[1]["roomId"] != "R1" {
		t.Errorf("bookings = %v, want newest first", mine)
	}

	w = app.do(t, "GET", "/bookings?email=b@y.com", "", cookie)
	if w.Code != http.StatusForbidden {
		t.Errorf("foreign bookings status = %d, want %d", w.Code, http.StatusForbidden)
	}
	if strings.Contains(w.Body.String(), "R3") {
		t.Error("forbidden response leaked data")
	}
}

func TestProtectedBookingsWithoutToken(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, "GET", "/bookings?email=a@x.com", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if body := decode[utils.APIResponse](t, w); body.Message != "unauthorized" {
		t.Errorf("message = %q", body.Message)
	}

	w = app.do(t, "GET", "/bookings?email=a@x.com", "", &http.Cookie{Name: middleware.TokenCookie, Value: "garbage"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	app := newTestApp(t)

	cookie := tokenCookie(t, app.do(t, "POST", "/jwt", `{"email":"a@x.com"}`))

	w := app.do(t, "POST", "/logout", "", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("logout status = %d", w.Code)
	}
	if ack := decode[map[string]interface{}](t, w); ack["success"] != true {
		t.Errorf("logout body = %v", ack)
	}
	cleared := tokenCookie(t, w)
	if cleared.MaxAge >= 0 || cleared.Value != "" {
		t.Errorf("cleared cookie = %+v", cleared)
	}

	w = app.do(t, "GET", "/bookings?email=a@x.com", "", cookie)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("revoked token status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	if w := app.do(t, "POST", "/logout", ""); w.Code != http.StatusOK {
		t.Errorf("logout without session status = %d", w.Code)
	}
}

func TestLogoutIgnoresForgedToken(t *testing.T) {
	app := newTestApp(t)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "a@x.com",
		"exp":   253402300799,
	}).SignedString([]byte("attacker-key"))
	if err != nil {
		t.Fatalf("sign forged token: %v", err)
	}
	valid, _, err := app.tokens.CreateToken(map[string]interface{}{"email": "a@x.com"})
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	for _, token := range []string{forged, "not-a-token"} {
		w := app.do(t, "POST", "/logout", "", &http.Cookie{Name: middleware.TokenCookie, Value: token})
		if w.Code != http.StatusOK {
			t.Errorf("logout status = %d", w.Code)
		}
		if app.revoked.IsRevoked(token) {
			t.Errorf("unverified token %.20s... was stored as revoked", token)
		}
	}
	if n := app.revoked.Sweep(); n != 0 {
		t.Errorf("sweep removed %d entries, want 0", n)
	}

	w := app.do(t, "POST", "/logout", "", &http.Cookie{Name: middleware.TokenCookie, Value: valid})
	if w.Code != http.StatusOK {
		t.Fatalf("logout status = %d", w.Code)
	}
	if !app.revoked.IsRevoked(valid) {
		t.Error("valid token was not revoked")
	}
}

func TestIssueTokenRejectsNonObject(t *testing.T) {
	app := newTestApp(t)

	for _, body := range []string{`"a@x.com"`, `[1,2]`, `{"email":`, `{} {}`} {
		if w := app.do(t, "POST", "/jwt", body); w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want %d", body, w.Code, http.StatusBadRequest)
		}
	}
}

func TestOversizedBodyRejected(t *testing.T) {
	app := newTestApp(t)

	body := `{"email":"a@x.com","bio":"` + strings.Repeat("x", 1<<20) + `"}`
	w := app.do(t, "POST", "/users", body)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusRequestEntityTooLarge)
	}

	docs, err := app.store.Collection(db_models.UsersCollection).Find(context.Background(), nil, repositories.FindOptions{})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("stored %d users from a truncated body", len(docs))
	}
}

func createRoom(t *testing.T, app *testApp) string {
	t.Helper()
	res, err := app.store.Collection(db_models.RoomsCollection).InsertOne(
		context.Background(), db_models.Document{"name": "Ocean suite", "price": 240})
	if err != nil {
		t.Fatalf("seed room: %v", err)
	}
	return res.InsertedID
}

func TestRoomsListAndGet(t *testing.T) {
	app := newTestApp(t)
	id := createRoom(t, app)

	w := app.do(t, "GET", "/rooms", "")
	rooms := decode[[]map[string]interface{}](t, w)
	if w.Code != http.StatusOK || len(rooms) != 1 || rooms[0]["name"] != "Ocean suite" {
		t.Errorf("rooms = %v (status %d)", rooms, w.Code)
	}

	w = app.do(t, "GET", "/rooms/"+id, "")
	room := decode[map[string]interface{}](t, w)
	if room["_id"] != id || room["price"] != float64(240) {
		t.Errorf("room = %v", room)
	}

	w = app.do(t, "GET", "/rooms/0190c7a4-7b2e-7c3a-9d7e-1f2a3b4c5d6e", "")
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "null" {
		t.Errorf("missing room: status = %d, body = %s", w.Code, w.Body.String())
	}

	w = app.do(t, "GET", "/rooms/"+primitive.NewObjectID().Hex()+"x", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed id: status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestRoomReviewsAndAvailability(t *testing.T) {
	app := newTestApp(t)
	id := createRoom(t, app)

	for _, text := range []string{"lovely", "noisy"} {
		w := app.do(t, "POST", "/rooms/"+id, `{"review":"`+text+`","rating":4}`)
		if w.Code != http.StatusOK {
			t.Fatalf("review status = %d, body = %s", w.Code, w.Body.String())
		}
		ack := decode[map[string]interface{}](t, w)
		if ack["matchedCount"] != float64(1) || ack["modifiedCount"] != float64(1) {
			t.Errorf("review ack = %v", ack)
		}
	}

	for i := 0; i < 2; i++ {
		w := app.do(t, "PATCH", "/rooms/"+id, `{"from":"2024-01-01","to":"2024-01-05"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("availability status = %d", w.Code)
		}
		ack := decode[map[string]interface{}](t, w)
		if ack["acknowledged"] != true || ack["matchedCount"] != float64(1) {
			t.Errorf("availability ack %d = %v", i, ack)
		}
	}

	room := decode[map[string]interface{}](t, app.do(t, "GET", "/rooms/"+id, ""))
	reviews, _ := room["reviews"].([]interface{})
	if len(reviews) != 2 {
		t.Fatalf("reviews = %v", room["reviews"])
	}
	first := reviews[0].(map[string]interface{})
	if first["review"] != "lovely" || first["currentDate"] == nil {
		t.Errorf("first review = %v", first)
	}
	avail, _ := room["Availability"].(map[string]interface{})
	if avail["from"] != "2024-01-01" {
		t.Errorf("Availability = %v", room["Availability"])
	}
}

func TestReviewOnNonArrayFieldConflicts(t *testing.T) {
	app := newTestApp(t)
	res, err := app.store.Collection(db_models.RoomsCollection).InsertOne(
		context.Background(), db_models.Document{"name": "Loft", db_models.FieldReviews: "closed"})
	if err != nil {
		t.Fatalf("seed room: %v", err)
	}

	w := app.do(t, "POST", "/rooms/"+res.InsertedID, `{"review":"nice"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusConflict)
	}

	room := decode[map[string]interface{}](t, app.do(t, "GET", "/rooms/"+res.InsertedID, ""))
	if room[db_models.FieldReviews] != "closed" {
		t.Errorf("reviews = %#v", room[db_models.FieldReviews])
	}
}

func TestBookingUpdateAndCancel(t *testing.T) {
	app := newTestApp(t)

	ack := decode[map[string]interface{}](t, app.do(t, "POST", "/bookings", `{"roomId":"R1","email":"a@x.com","bookedDate":"2024-01-01"}`))
	id, _ := ack["insertedId"].(string)

	w := app.do(t, "PATCH", "/bookings/"+id, `"2024-06-06"`)
	upd := decode[map[string]interface{}](t, w)
	if w.Code != http.StatusOK || upd["matchedCount"] != float64(1) || upd["modifiedCount"] != float64(1) {
		t.Errorf("first update = %v (status %d)", upd, w.Code)
	}
	upd = decode[map[string]interface{}](t, app.do(t, "PATCH", "/bookings/"+id, `"2024-06-06"`))
	if upd["matchedCount"] != float64(1) || upd["modifiedCount"] != float64(0) {
		t.Errorf("repeat update = %v", upd)
	}

	dates := decode[[]map[string]interface{}](t, app.do(t, "GET", "/bookings-date?id=R1", ""))
	if len(dates) != 1 || dates[0]["bookedDate"] != "2024-06-06" {
		t.Errorf("dates = %v", dates)
	}

	del := decode[map[string]interface{}](t, app.do(t, "DELETE", "/bookings/"+id, ""))
	if del["deletedCount"] != float64(1) {
		t.Errorf("first delete = %v", del)
	}
	del = decode[map[string]interface{}](t, app.do(t, "DELETE", "/bookings/"+id, ""))
	if del["deletedCount"] != float64(0) {
		t.Errorf("second delete = %v", del)
	}
}

func TestSubscriptions(t *testing.T) {
	app := newTestApp(t)

	if w := app.do(t, "POST", "/subscribe", `{"email":"a@x.com"}`); w.Code != http.StatusOK {
		t.Fatalf("subscribe status = %d", w.Code)
	}

	sub := decode[map[string]interface{}](t, app.do(t, "GET", "/subscribe?email=a@x.com", ""))
	if sub["email"] != "a@x.com" {
		t.Errorf("subscription = %v", sub)
	}

	if w := app.do(t, "GET", "/subscribe", ""); w.Code != http.StatusBadRequest {
		t.Errorf("missing email status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
