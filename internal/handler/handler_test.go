package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/BloggingApp/friends-service/internal/auth"
	"github.com/BloggingApp/friends-service/internal/config"
	"github.com/BloggingApp/friends-service/internal/dto"
	"github.com/BloggingApp/friends-service/internal/model"
	"github.com/BloggingApp/friends-service/internal/repository/memory"
	"github.com/BloggingApp/friends-service/internal/service"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

type testServer struct {
	t       *testing.T
	handler http.Handler
	store   *memory.Store
}

// newTestServer creates users user1..userN (ids 1..N) on a memory-backed service.
func newTestServer(t *testing.T, n int) *testServer {
	t.Helper()
	repo, store := memory.New()
	logger := zap.NewNop()
	services := service.New(logger, repo, nil, service.NewLogPublisher(logger), config.OutboxConfig{Interval: time.Minute})

	for i := 1; i <= n; i++ {
		u := &model.User{Username: "user" + string(rune('0'+i)), Password: "x"}
		require.NoError(t, repo.User.Create(context.Background(), u))
	}

	return &testServer{
		t:       t,
		handler: New(services, logger, testSecret).SetupRoutes(),
		store:   store,
	}
}

func token(t *testing.T, userID int64) string {
	t.Helper()
	tok, err := auth.NewToken(userID, []byte(testSecret), nil)
	require.NoError(t, err)
	return tok
}

// do sends a request as userID; 0 means anonymous.
func (s *testServer) do(method, path string, userID int64, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if userID != 0 {
		req.Header.Set("Authorization", "Bearer "+token(s.t, userID))
	}

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func decodeUsers(t *testing.T, w *httptest.ResponseRecorder) []dto.User {
	t.Helper()
	var users []dto.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	return users
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["errors"]
}

func TestSubscribeTwice(t *testing.T) {
	s := newTestServer(t, 2)

	w := s.do(http.MethodPost, "/api/v1/users/2/subscribe", 1, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var target dto.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &target))
	assert.Equal(t, int64(2), target.ID)
	assert.Equal(t, model.StatusOutgoingRequest, target.FriendshipStatus)

	w = s.do(http.MethodPost, "/api/v1/users/2/subscribe", 1, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "cannot subscribe twice", decodeError(t, w))
}

func TestSubscribeToYourself(t *testing.T) {
	s := newTestServer(t, 1)

	w := s.do(http.MethodPost, "/api/v1/users/1/subscribe", 1, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "cannot subscribe to yourself", decodeError(t, w))
}

func TestUnsubscribe(t *testing.T) {
	s := newTestServer(t, 2)

	w := s.do(http.MethodDelete, "/api/v1/users/2/subscribe", 1, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "cannot unsubscribe if not subscribed", decodeError(t, w))

	s.store.AddFollow(1, 2)
	w = s.do(http.MethodDelete, "/api/v1/users/2/subscribe", 1, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.False(t, s.store.HasFollow(1, 2))
}

func TestRelationViews(t *testing.T) {
	s := newTestServer(t, 2)
	s.store.AddFollow(1, 2)

	w := s.do(http.MethodGet, "/api/v1/users/2/subscribers", 2, "")
	require.Equal(t, http.StatusOK, w.Code)
	subs := decodeUsers(t, w)
	require.Len(t, subs, 1)
	assert.Equal(t, int64(1), subs[0].ID)
	assert.Equal(t, model.StatusIncomingRequest, subs[0].FriendshipStatus)

	w = s.do(http.MethodGet, "/api/v1/users/1/subscriptions", 1, "")
	require.Equal(t, http.StatusOK, w.Code)
	subscriptions := decodeUsers(t, w)
	require.Len(t, subscriptions, 1)
	assert.Equal(t, int64(2), subscriptions[0].ID)

	w = s.do(http.MethodGet, "/api/v1/users/1/friends", 1, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	s.store.AddFollow(2, 1)
	w = s.do(http.MethodGet, "/api/v1/users/1/friends", 1, "")
	friends := decodeUsers(t, w)
	require.Len(t, friends, 1)
	assert.Equal(t, int64(2), friends[0].ID)
	assert.Equal(t, model.StatusFriends, friends[0].FriendshipStatus)

	w = s.do(http.MethodGet, "/api/v1/users/1/subscribers", 1, "")
	assert.Empty(t, decodeUsers(t, w))
}

func TestRemoveSubscriber(t *testing.T) {
	s := newTestServer(t, 3)
	s.store.AddFollow(3, 1)

	w := s.do(http.MethodDelete, "/api/v1/users/1/subscribers/3", 2, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "not enough rights", decodeError(t, w))

	w = s.do(http.MethodDelete, "/api/v1/users/1/subscribers/3", 1, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, s.store.HasFollow(3, 1))

	w = s.do(http.MethodDelete, "/api/v1/users/1/subscribers/3", 1, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "user user3 is not currently a subscriber of user1", decodeError(t, w))

	w = s.do(http.MethodDelete, "/api/v1/users/1/subscribers/9", 1, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUsersList(t *testing.T) {
	s := newTestServer(t, 3)
	s.store.AddFollow(1, 2)
	s.store.AddFollow(3, 1)

	before := s.store.Lookups()
	w := s.do(http.MethodGet, "/api/v1/users", 0, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, before, s.store.Lookups())
	for _, u := range decodeUsers(t, w) {
		assert.Equal(t, model.StatusNothing, u.FriendshipStatus)
	}

	w = s.do(http.MethodGet, "/api/v1/users", 1, "")
	require.Equal(t, http.StatusOK, w.Code)
	users := decodeUsers(t, w)
	require.Len(t, users, 3)
	assert.Equal(t, model.StatusNothing, users[0].FriendshipStatus)
	assert.Equal(t, model.StatusOutgoingRequest, users[1].FriendshipStatus)
	assert.Equal(t, model.StatusIncomingRequest, users[2].FriendshipStatus)
}

func TestUsersCreate(t *testing.T) {
	s := newTestServer(t, 1)

	w := s.do(http.MethodPost, "/api/v1/users", 0, `{"username":"new_user","password":"ReallySuperSecret123"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")

	var created dto.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "new_user", created.Username)
	assert.Equal(t, model.StatusNothing, created.FriendshipStatus)

	w = s.do(http.MethodPost, "/api/v1/users", 0, `{"username":"user1","password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "cannot create user", decodeError(t, w))

	w = s.do(http.MethodPost, "/api/v1/users", 0, `{"username":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUsersGet(t *testing.T) {
	s := newTestServer(t, 2)
	s.store.AddFollow(2, 1)

	w := s.do(http.MethodGet, "/api/v1/users/2", 1, "")
	require.Equal(t, http.StatusOK, w.Code)
	var u dto.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))
	assert.Equal(t, model.StatusIncomingRequest, u.FriendshipStatus)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/users/42", 1, "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/users/abc", 1, "").Code)
}

func TestAuthentication(t *testing.T) {
	s := newTestServer(t, 2)

	w := s.do(http.MethodGet, "/api/v1/users/1/friends", 0, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "authentication credentials were not provided", decodeError(t, w))

	w = s.do(http.MethodPost, "/api/v1/users/2/subscribe", 0, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// unknown user in a valid token
	w = s.do(http.MethodGet, "/api/v1/users/1/friends", 99, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": "1"}).SignedString([]byte("other"))
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/v1/users/1/friends", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid jwt", decodeError(t, rec))
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, 1)

	w := s.do(http.MethodPut, "/api/v1/users/1/subscribe", 1, "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
