package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	stdimage "image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomfinder_backend/internal/auth"
	"roomfinder_backend/internal/middleware"
	"roomfinder_backend/internal/model"
	"roomfinder_backend/internal/repository"
	"roomfinder_backend/internal/repository/memory"
	"roomfinder_backend/internal/service"
	"roomfinder_backend/pkg/utils/jwt"
)

const (
	ownerID  = "0b7d2f4e-1c5a-4f53-9a77-1d2c3e4f5a60"
	otherID  = "6e1f0a9b-2d3c-4b5a-8e7f-0a1b2c3d4e5f"
	finderID = "9c8b7a6d-5e4f-4a3b-9c2d-1e0f9a8b7c6d"
)

type memObjects struct {
	mu   sync.Mutex
	puts []string
}

func (m *memObjects) Put(_ context.Context, key string, _ []byte, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts = append(m.puts, key)
	return "https://cdn.example.com/" + key, nil
}

func (m *memObjects) Delete(context.Context, string) error { return nil }

type testEnv struct {
	app      *fiber.App
	store    *memory.Store
	tokens   *jwt.Manager
	provider *auth.LocalProvider
	objects  *memObjects
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.New()
	tokens := jwt.NewManager("test-secret", time.Hour)
	provider := auth.NewLocalProvider(store, tokens)
	gate := service.NewAccessGate(store)
	objects := &memObjects{}

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	SetupRoutes(app, Deps{
		Provider:   provider,
		Accounts:   service.NewAccounts(provider, store, nil),
		Rooms:      service.NewRooms(store, gate, objects),
		Images:     service.NewImages(store, gate, objects),
		Uploads:    service.NewUploads(objects),
		SavedRooms: service.NewSavedRooms(store),
	})

	ctx := context.Background()
	for _, p := range []model.Profile{
		{ID: ownerID, Email: "owner@example.com", FirstName: "Asha", LastName: "Rao", PhoneNumber: "+91 98450 00000", UserType: model.UserTypeOwner},
		{ID: otherID, Email: "other@example.com", FirstName: "Vikram", LastName: "Shah", UserType: model.UserTypeOwner},
		{ID: finderID, Email: "finder@example.com", FirstName: "Meera", LastName: "Iyer", UserType: model.UserTypeFinder},
	} {
		p := p
		require.NoError(t, store.CreateProfile(ctx, &p))
	}

	return &testEnv{app: app, store: store, tokens: tokens, provider: provider, objects: objects}
}

func (e *testEnv) token(t *testing.T, userID string) string {
	t.Helper()
	token, _, err := e.tokens.GenerateToken(userID, userID+"@example.com", nil)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, req *http.Request, token string) (*http.Response, map[string]interface{}) {
	t.Helper()
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := map[string]interface{}{}
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	}
	return resp, body
}

func (e *testEnv) json(t *testing.T, method, path, token string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, body := e.do(t, req, token)
	return resp.StatusCode, body
}

func roomPayload() map[string]interface{} {
	return map[string]interface{}{
		"title":              "Sunny 1BHK near metro",
		"description":        "East facing",
		"location":           "Indiranagar, Bangalore",
		"rentPrice":          18000,
		"propertyType":       "1 BHK",
		"tenantPreference":   "Family",
		"ownerContactNumber": "+91 98450 00000",
		"amenities":          []string{"Parking"},
		"areaSqft":           650,
	}
}

func (e *testEnv) createRoom(t *testing.T, overrides map[string]interface{}) uint {
	t.Helper()
	payload := roomPayload()
	for k, v := range overrides {
		payload[k] = v
	}
	status, body := e.json(t, fiber.MethodPost, "/api/rooms", e.token(t, ownerID), payload)
	require.Equal(t, fiber.StatusCreated, status, body)
	room := body["room"].(map[string]interface{})
	return uint(room["id"].(float64))
}

func idPath(prefix string, id uint, suffix string) string {
	return prefix + "/" + strconv.FormatUint(uint64(id), 10) + suffix
}

func TestSignUpValidation(t *testing.T) {
	env := newTestEnv(t)
	payload := map[string]interface{}{
		"email": "ravi@example.com", "password": "1234567",
		"firstName": "Ravi", "lastName": "Kumar", "userType": "finder",
	}

	status, body := env.json(t, fiber.MethodPost, "/api/auth/sign-up", "", payload)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Password must be at least 8 characters", body["error"])

	payload["password"] = "12345678"
	status, body = env.json(t, fiber.MethodPost, "/api/auth/sign-up", "", payload)
	assert.Equal(t, fiber.StatusCreated, status, body)
	assert.Equal(t, true, body["success"])

	cred, err := env.store.FindCredentialByEmail(context.Background(), "ravi@example.com")
	require.NoError(t, err)
	profile, err := env.store.FindProfile(context.Background(), cred.ID)
	require.NoError(t, err)
	assert.Equal(t, model.UserTypeFinder, profile.UserType)

	status, body = env.json(t, fiber.MethodPost, "/api/auth/sign-up", "", payload)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "User already registered", body["error"])
}

func TestSignUpRejectsOverlongPassword(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.json(t, fiber.MethodPost, "/api/auth/sign-up", "", map[string]interface{}{
		"email": "ravi@example.com", "password": strings.Repeat("x", 80),
		"firstName": "Ravi", "lastName": "Kumar", "userType": "finder",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Password must be at most 72 bytes", body["error"])

	_, err := env.store.FindCredentialByEmail(context.Background(), "ravi@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSignUpMissingFields(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.json(t, fiber.MethodPost, "/api/auth/sign-up", "", map[string]interface{}{
		"email": "ravi@example.com", "password": "password1",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Missing required fields", body["error"])

	status, body = env.json(t, fiber.MethodPost, "/api/auth/sign-up", "", map[string]interface{}{
		"email": "ravi@example.com", "password": "password1",
		"firstName": "Ravi", "lastName": "Kumar", "userType": "admin",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Invalid user type", body["error"])
}

func TestLoginSetsSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	identity, _, err := env.provider.SignUp(ctx, "lina@example.com", "password1", map[string]interface{}{"user_type": "finder"})
	require.NoError(t, err)
	require.NoError(t, env.store.CreateProfile(ctx, &model.Profile{
		ID: identity.ID, Email: identity.Email, FirstName: "Lina", LastName: "Das", UserType: model.UserTypeFinder,
	}))

	status, body := env.json(t, fiber.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email": "lina@example.com", "password": "wrong-password",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid login credentials", body["error"])

	req := httptest.NewRequest(fiber.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"lina@example.com","password":"password1"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, body := env.do(t, req, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, body["token"], cookie.Value)

	req = httptest.NewRequest(fiber.MethodGet, "/api/profile", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: cookie.Value})
	resp, body = env.do(t, req, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	profile := body["profile"].(map[string]interface{})
	assert.Equal(t, "Lina", profile["first_name"])
}

func TestAuthCallback(t *testing.T) {
	env := newTestEnv(t)
	_, code, err := env.provider.SignUp(context.Background(), "neel@example.com", "password1", nil)
	require.NoError(t, err)

	resp, _ := env.do(t, httptest.NewRequest(fiber.MethodGet, "/auth/callback", nil), "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login", resp.Header.Get(fiber.HeaderLocation))

	resp, _ = env.do(t, httptest.NewRequest(fiber.MethodGet, "/auth/callback?code=not-a-code", nil), "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/error", resp.Header.Get(fiber.HeaderLocation))

	resp, _ = env.do(t, httptest.NewRequest(fiber.MethodGet, "/auth/callback?code="+code, nil), "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))
	assert.Contains(t, resp.Header.Get(fiber.HeaderSetCookie), middleware.SessionCookie+"=")

	// codes are single use
	resp, _ = env.do(t, httptest.NewRequest(fiber.MethodGet, "/auth/callback?code="+code, nil), "")
	assert.Equal(t, "/auth/error", resp.Header.Get(fiber.HeaderLocation))
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	env := newTestEnv(t)

	for _, tc := range []struct{ method, path string }{
		{fiber.MethodGet, "/api/profile"},
		{fiber.MethodPost, "/api/rooms"},
		{fiber.MethodGet, "/api/rooms/mine"},
		{fiber.MethodGet, "/api/saved-rooms"},
		{fiber.MethodPost, "/api/saved-rooms/toggle"},
	} {
		status, body := env.json(t, tc.method, tc.path, "", map[string]interface{}{})
		assert.Equal(t, fiber.StatusUnauthorized, status, tc.path)
		assert.Equal(t, "Unauthorized", body["error"], tc.path)
	}

	status, _ := env.json(t, fiber.MethodGet, "/api/profile", "forged.token.value", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestProfileUpdateIgnoresProtectedFields(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.json(t, fiber.MethodPut, "/api/profile", env.token(t, finderID), map[string]interface{}{
		"first_name": "Meenakshi", "user_type": "owner", "email": "evil@example.com",
	})
	require.Equal(t, fiber.StatusOK, status, body)
	profile := body["profile"].(map[string]interface{})
	assert.Equal(t, "Meenakshi", profile["first_name"])
	assert.Equal(t, "finder", profile["user_type"])
	assert.Equal(t, "finder@example.com", profile["email"])
}

func TestRoomLifecycle(t *testing.T) {
	env := newTestEnv(t)
	id := env.createRoom(t, map[string]interface{}{"imageUrls": []string{"https://img/1.jpg", "https://img/2.jpg"}})

	status, body := env.json(t, fiber.MethodGet, idPath("/api/rooms", id, ""), "", nil)
	require.Equal(t, fiber.StatusOK, status)
	room := body["room"].(map[string]interface{})
	assert.Equal(t, "Sunny 1BHK near metro", room["title"])
	assert.Equal(t, float64(18000), room["rent_price"])
	assert.Equal(t, true, room["is_available"])
	assert.Len(t, room["images"], 2)
	owner := room["owner"].(map[string]interface{})
	assert.Equal(t, "+91 98450 00000", owner["phone_number"])

	status, body = env.json(t, fiber.MethodPut, idPath("/api/rooms", id, ""), env.token(t, otherID), map[string]interface{}{"title": "Mine now"})
	assert.Equal(t, fiber.StatusForbidden, status)
	forbidden := body["error"]

	status, body = env.json(t, fiber.MethodPut, idPath("/api/rooms", id+100, ""), env.token(t, otherID), map[string]interface{}{"title": "Mine now"})
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, forbidden, body["error"])

	status, body = env.json(t, fiber.MethodPut, idPath("/api/rooms", id, ""), env.token(t, ownerID), map[string]interface{}{
		"rentPrice": 17500, "isAvailable": false,
	})
	require.Equal(t, fiber.StatusOK, status, body)
	room = body["room"].(map[string]interface{})
	assert.Equal(t, float64(17500), room["rent_price"])
	assert.Equal(t, ownerID, room["owner_id"])

	// unavailable rooms drop out of search but stay on the owner dashboard
	status, body = env.json(t, fiber.MethodGet, "/api/rooms", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, body["rooms"])
	status, body = env.json(t, fiber.MethodGet, "/api/rooms/mine", env.token(t, ownerID), nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["rooms"], 1)

	status, _ = env.json(t, fiber.MethodDelete, idPath("/api/rooms", id, ""), env.token(t, otherID), nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	status, body = env.json(t, fiber.MethodDelete, idPath("/api/rooms", id, ""), env.token(t, ownerID), nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])

	status, body = env.json(t, fiber.MethodGet, idPath("/api/rooms", id, ""), "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Room not found", body["error"])
}

func TestGetRoomMalformedIDIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/rooms/abc", "/api/rooms/0", "/api/rooms/abc/images"} {
		status, body := env.json(t, fiber.MethodGet, path, "", nil)
		assert.Equal(t, fiber.StatusNotFound, status, path)
		assert.Equal(t, "Room not found", body["error"], path)
	}
}

func TestUpdateRoomClearsNullableFields(t *testing.T) {
	env := newTestEnv(t)
	id := env.createRoom(t, map[string]interface{}{"floorNumber": 3})

	status, body := env.json(t, fiber.MethodPut, idPath("/api/rooms", id, ""), env.token(t, ownerID), map[string]interface{}{
		"title": "Renamed",
	})
	require.Equal(t, fiber.StatusOK, status, body)
	room := body["room"].(map[string]interface{})
	assert.Equal(t, float64(650), room["area_sqft"])
	assert.Equal(t, float64(3), room["floor_number"])

	status, body = env.json(t, fiber.MethodPut, idPath("/api/rooms", id, ""), env.token(t, ownerID), map[string]interface{}{
		"areaSqft": nil, "floorNumber": nil,
	})
	require.Equal(t, fiber.StatusOK, status, body)
	room = body["room"].(map[string]interface{})
	assert.Nil(t, room["area_sqft"])
	assert.Nil(t, room["floor_number"])
	assert.Equal(t, "Renamed", room["title"])
}

func TestCreateRoomRules(t *testing.T) {
	env := newTestEnv(t)

	payload := roomPayload()
	delete(payload, "ownerContactNumber")
	status, body := env.json(t, fiber.MethodPost, "/api/rooms", env.token(t, ownerID), payload)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Missing required fields", body["error"])

	payload = roomPayload()
	payload["propertyType"] = "Penthouse"
	status, body = env.json(t, fiber.MethodPost, "/api/rooms", env.token(t, ownerID), payload)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Invalid property type", body["error"])

	status, body = env.json(t, fiber.MethodPost, "/api/rooms", env.token(t, finderID), roomPayload())
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "Only owners can list rooms", body["error"])
}

func TestListRoomsFilters(t *testing.T) {
	env := newTestEnv(t)
	prices := []int{5000, 12000, 15000, 25000, 18000}
	types := []string{"2 BHK", "1 BHK", "1 BHK", "1 BHK", "2 BHK"}
	for i := range prices {
		env.createRoom(t, map[string]interface{}{"rentPrice": prices[i], "propertyType": types[i]})
	}

	status, body := env.json(t, fiber.MethodGet, "/api/rooms?minPrice=10000&maxPrice=20000&propertyType=1%20BHK", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	rooms := body["rooms"].([]interface{})
	require.Len(t, rooms, 2)
	got := []float64{}
	for _, r := range rooms {
		got = append(got, r.(map[string]interface{})["rent_price"].(float64))
	}
	assert.ElementsMatch(t, []float64{12000, 15000}, got)

	status, body = env.json(t, fiber.MethodGet, "/api/rooms?tenantPref=Girls", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, body["rooms"])

	status, body = env.json(t, fiber.MethodGet, "/api/rooms?minPrice=cheap", "", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Invalid minPrice", body["error"])
}

func TestListRoomsJoinFallback(t *testing.T) {
	env := newTestEnv(t)
	id := env.createRoom(t, nil)
	env.store.FailOwnerJoin = true

	status, body := env.json(t, fiber.MethodGet, "/api/rooms", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	rooms := body["rooms"].([]interface{})
	require.Len(t, rooms, 1)
	room := rooms[0].(map[string]interface{})
	assert.Nil(t, room["owner"])

	status, body = env.json(t, fiber.MethodGet, idPath("/api/rooms", id, ""), "", nil)
	require.Equal(t, fiber.StatusOK, status)
	owner := body["room"].(map[string]interface{})["owner"].(map[string]interface{})
	assert.Equal(t, "Asha", owner["first_name"])
}

func TestUpstreamFailureIs500(t *testing.T) {
	env := newTestEnv(t)
	env.store.ReadErr = errors.New("connection refused")

	status, body := env.json(t, fiber.MethodGet, "/api/rooms", "", nil)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Failed to fetch rooms", body["error"])
}

func TestFeaturedRoute(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 7; i++ {
		env.createRoom(t, nil)
	}

	status, body := env.json(t, fiber.MethodGet, "/api/rooms/featured", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["rooms"], service.FeaturedRoomsLimit)
}

func TestRoomImages(t *testing.T) {
	env := newTestEnv(t)
	id := env.createRoom(t, nil)
	path := idPath("/api/rooms", id, "/images")

	for _, order := range []int{2, 0, 1} {
		status, body := env.json(t, fiber.MethodPost, path, env.token(t, ownerID), map[string]interface{}{
			"imageUrl": "https://img/x.jpg", "displayOrder": order,
		})
		require.Equal(t, fiber.StatusCreated, status, body)
	}

	status, body := env.json(t, fiber.MethodGet, path, "", nil)
	require.Equal(t, fiber.StatusOK, status)
	images := body["images"].([]interface{})
	require.Len(t, images, 3)
	for i, img := range images {
		assert.Equal(t, float64(i), img.(map[string]interface{})["display_order"])
	}

	status, _ = env.json(t, fiber.MethodPost, path, env.token(t, otherID), map[string]interface{}{"imageUrl": "https://img/y.jpg"})
	assert.Equal(t, fiber.StatusForbidden, status)

	first := images[0].(map[string]interface{})
	imgPath := idPath(path, uint(first["id"].(float64)), "")
	status, _ = env.json(t, fiber.MethodDelete, imgPath, env.token(t, ownerID), nil)
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = env.json(t, fiber.MethodDelete, imgPath, env.token(t, ownerID), nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func multipartImage(t *testing.T, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func pngData(t *testing.T) []byte {
	t.Helper()
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, 3, 3))
	img.Set(1, 1, color.RGBA{B: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRoomImageUpload(t *testing.T) {
	env := newTestEnv(t)
	id := env.createRoom(t, nil)

	buf, contentType := multipartImage(t, "Living Room.png", pngData(t))
	req := httptest.NewRequest(fiber.MethodPost, idPath("/api/rooms", id, "/images"), buf)
	req.Header.Set(fiber.HeaderContentType, contentType)
	resp, body := env.do(t, req, env.token(t, ownerID))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, body)

	image := body["image"].(map[string]interface{})
	assert.True(t, strings.HasPrefix(image["image_url"].(string), "https://cdn.example.com/rooms/"+ownerID+"/"))
	assert.True(t, strings.HasSuffix(image["image_url"].(string), "_living-room.png"))
	require.Len(t, env.objects.puts, 1)

	buf, contentType = multipartImage(t, "notes.txt", []byte("hello"))
	req = httptest.NewRequest(fiber.MethodPost, idPath("/api/rooms", id, "/images"), buf)
	req.Header.Set(fiber.HeaderContentType, contentType)
	resp, body = env.do(t, req, env.token(t, ownerID))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Room photos must be JPEG, PNG or WebP", body["error"])
}

func TestStandaloneUpload(t *testing.T) {
	env := newTestEnv(t)

	buf, contentType := multipartImage(t, "hall.png", pngData(t))
	req := httptest.NewRequest(fiber.MethodPost, "/api/uploads", buf)
	req.Header.Set(fiber.HeaderContentType, contentType)
	resp, body := env.do(t, req, env.token(t, ownerID))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, body)
	assert.Contains(t, body["url"], "https://cdn.example.com/")
}

func TestSavedRooms(t *testing.T) {
	env := newTestEnv(t)
	id := env.createRoom(t, nil)
	finder := env.token(t, finderID)

	status, body := env.json(t, fiber.MethodPost, "/api/saved-rooms/toggle", finder, map[string]interface{}{"roomId": id})
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, true, body["saved"])

	status, body = env.json(t, fiber.MethodGet, idPath("/api/saved-rooms", id, ""), finder, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["saved"])

	status, body = env.json(t, fiber.MethodGet, "/api/saved-rooms", finder, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["rooms"], 1)

	status, body = env.json(t, fiber.MethodPost, "/api/saved-rooms/toggle", finder, map[string]interface{}{"roomId": id})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, body["saved"])

	status, body = env.json(t, fiber.MethodGet, "/api/saved-rooms", finder, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, body["rooms"])

	for i := 0; i < 2; i++ {
		status, _ = env.json(t, fiber.MethodPost, "/api/saved-rooms", finder, map[string]interface{}{"roomId": id})
		assert.Equal(t, fiber.StatusCreated, status)
	}
	status, body = env.json(t, fiber.MethodGet, "/api/saved-rooms", finder, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["rooms"], 1)

	status, body = env.json(t, fiber.MethodDelete, idPath("/api/saved-rooms", id, ""), finder, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])

	status, body = env.json(t, fiber.MethodPost, "/api/saved-rooms/toggle", finder, map[string]interface{}{"roomId": id + 40})
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Room not found", body["error"])

	status, body = env.json(t, fiber.MethodPost, "/api/saved-rooms/toggle", finder, map[string]interface{}{})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Missing required fields", body["error"])
}
