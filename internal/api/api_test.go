package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"user_orders/internal/dto"
	"user_orders/internal/middleware"
	"user_orders/internal/service"
	"user_orders/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// stubUsers answers every call with resp and remembers what it was given.
type stubUsers struct {
	resp     service.Response
	calls    int
	id       uint
	username string
	req      dto.UserRequest
}

func (s *stubUsers) GetUsers(context.Context) service.Response {
	s.calls++
	return s.resp
}

func (s *stubUsers) GetUser(_ context.Context, username string) service.Response {
	s.calls++
	s.username = username
	return s.resp
}

func (s *stubUsers) CreateUser(_ context.Context, req dto.UserRequest) service.Response {
	s.calls++
	s.req = req
	return s.resp
}

func (s *stubUsers) UpdateUser(_ context.Context, id uint, req dto.UserRequest) service.Response {
	s.calls++
	s.id, s.req = id, req
	return s.resp
}

func (s *stubUsers) DeleteUser(_ context.Context, username string) service.Response {
	s.calls++
	s.username = username
	return s.resp
}

type stubOrders struct {
	resp    service.Response
	calls   int
	id      uint
	invoice string
	req     dto.OrderRequest
}

func (s *stubOrders) CreateOrder(_ context.Context, req dto.OrderRequest) service.Response {
	s.calls++
	s.req = req
	return s.resp
}

func (s *stubOrders) UpdateOrder(_ context.Context, id uint, req dto.OrderRequest) service.Response {
	s.calls++
	s.id, s.req = id, req
	return s.resp
}

func (s *stubOrders) DeleteOrder(_ context.Context, invoiceNumber string) service.Response {
	s.calls++
	s.invoice = invoiceNumber
	return s.resp
}

const (
	userBody  = `{"fullname":"Alice A","username":"alice","email":"a@x.com","address":"1 Rd"}`
	orderBody = `{"invoiceNumber":"INV-1","productName":"Widget","quantity":2,"username":"alice"}`
)

func newRouter(users *stubUsers, orders *stubOrders, guards ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, users, orders, guards...)
	return r
}

func do(r http.Handler, method, path, body string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if len(header) == 2 {
		req.Header.Set(header[0], header[1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStatusMapping(t *testing.T) {
	testCases := []struct {
		name     string
		code     int
		wantHTTP int
		wantBody bool
	}{
		{name: "success", code: service.StatusSuccess, wantHTTP: http.StatusOK, wantBody: true},
		{name: "empty listing", code: service.StatusEmpty, wantHTTP: http.StatusNoContent},
		{name: "not found", code: service.StatusNotFound, wantHTTP: http.StatusNotFound, wantBody: true},
		{name: "conflict", code: service.StatusConflict, wantHTTP: http.StatusBadRequest, wantBody: true},
		{name: "failure", code: service.StatusFailure, wantHTTP: http.StatusBadRequest, wantBody: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			users := &stubUsers{resp: service.Response{StatusCode: tc.code, Message: tc.name}}
			w := do(newRouter(users, &stubOrders{}), http.MethodGet, "/api/users", "")

			require.Equal(t, tc.wantHTTP, w.Code)
			if !tc.wantBody {
				require.Empty(t, w.Body.String())
				return
			}
			var got map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			require.Equal(t, float64(tc.code), got["statusCode"])
			require.Equal(t, tc.name, got["message"])
		})
	}
}

func TestPathParamsReachService(t *testing.T) {
	users := &stubUsers{resp: service.Response{StatusCode: service.StatusSuccess}}
	orders := &stubOrders{resp: service.Response{StatusCode: service.StatusSuccess}}
	r := newRouter(users, orders)

	require.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/users/alice", "").Code)
	require.Equal(t, "alice", users.username)

	require.Equal(t, http.StatusOK, do(r, http.MethodDelete, "/api/users/bob", "").Code)
	require.Equal(t, "bob", users.username)

	require.Equal(t, http.StatusOK, do(r, http.MethodPut, "/api/users/7", userBody).Code)
	require.Equal(t, uint(7), users.id)
	require.Equal(t, "alice", users.req.Username)

	require.Equal(t, http.StatusOK, do(r, http.MethodPut, "/api/orders/3", orderBody).Code)
	require.Equal(t, uint(3), orders.id)
	require.Equal(t, 2, orders.req.Quantity)

	require.Equal(t, http.StatusOK, do(r, http.MethodDelete, "/api/orders/INV-9", "").Code)
	require.Equal(t, "INV-9", orders.invoice)

	require.Equal(t, http.StatusOK, do(r, http.MethodPut, "/api/users/4294967296", userBody).Code)
	require.Equal(t, uint(4294967296), users.id)
}

func TestRejectedBeforeService(t *testing.T) {
	testCases := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{name: "user missing email", method: http.MethodPost, path: "/api/users", body: `{"fullname":"A","username":"a","address":"x"}`},
		{name: "user malformed json", method: http.MethodPost, path: "/api/users", body: `{"fullname":`},
		{name: "user non numeric id", method: http.MethodPut, path: "/api/users/abc", body: userBody},
		{name: "user zero id", method: http.MethodPut, path: "/api/users/0", body: userBody},
		{name: "order zero quantity", method: http.MethodPost, path: "/api/orders", body: `{"invoiceNumber":"I","productName":"P","quantity":0,"username":"a"}`},
		{name: "order negative quantity", method: http.MethodPut, path: "/api/orders/1", body: `{"invoiceNumber":"I","productName":"P","quantity":-1,"username":"a"}`},
		{name: "order missing username", method: http.MethodPost, path: "/api/orders", body: `{"invoiceNumber":"I","productName":"P","quantity":1}`},
		{name: "order bad id", method: http.MethodPut, path: "/api/orders/x", body: orderBody},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			users := &stubUsers{}
			orders := &stubOrders{}
			w := do(newRouter(users, orders), tc.method, tc.path, tc.body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			require.Zero(t, users.calls)
			require.Zero(t, orders.calls)
		})
	}
}

func TestWriteGuard(t *testing.T) {
	const secret = "s3cret"
	users := &stubUsers{resp: service.Response{StatusCode: service.StatusSuccess}}
	orders := &stubOrders{resp: service.Response{StatusCode: service.StatusSuccess}}
	r := newRouter(users, orders, middleware.JWTAuthMiddleware(secret))

	t.Run("reads stay open", func(t *testing.T) {
		require.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/users", "").Code)
		require.Equal(t, http.StatusOK, do(r, http.MethodGet, "/health", "").Code)
	})

	t.Run("writes need a token", func(t *testing.T) {
		before := users.calls
		require.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/api/users", userBody).Code)
		require.Equal(t, http.StatusUnauthorized, do(r, http.MethodDelete, "/api/orders/INV-1", "").Code)
		require.Equal(t, before, users.calls)
		require.Zero(t, orders.calls)
	})

	t.Run("operator fills missing audit names", func(t *testing.T) {
		token, err := utils.GenerateJWT("clerk", secret, time.Minute)
		require.NoError(t, err)
		auth := []string{"Authorization", "Bearer " + token}

		require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/users", userBody, auth...).Code)
		require.NotNil(t, users.req.CreatedBy)
		require.Equal(t, "clerk", *users.req.CreatedBy)

		require.Equal(t, http.StatusOK, do(r, http.MethodPut, "/api/orders/1", orderBody, auth...).Code)
		require.NotNil(t, orders.req.UpdatedBy)
		require.Equal(t, "clerk", *orders.req.UpdatedBy)
	})

	t.Run("explicit audit names win", func(t *testing.T) {
		token, err := utils.GenerateJWT("clerk", secret, time.Minute)
		require.NoError(t, err)
		body := `{"fullname":"Alice A","username":"alice","email":"a@x.com","address":"1 Rd","createdBy":"importer"}`

		require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/users", body, "Authorization", "Bearer "+token).Code)
		require.Equal(t, "importer", *users.req.CreatedBy)
	})
}

func TestNoGuardLeavesAuditNamesUnset(t *testing.T) {
	users := &stubUsers{resp: service.Response{StatusCode: service.StatusSuccess}}
	r := newRouter(users, &stubOrders{})

	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/users", userBody).Code)
	require.Nil(t, users.req.CreatedBy)
}
