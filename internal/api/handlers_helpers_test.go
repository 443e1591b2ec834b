package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/subscriptions-api/internal/api/shared"
	"github.com/phrazzld/subscriptions-api/internal/mocks"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRouter mounts the handlers on the same paths the server uses.
func newTestRouter(users *mocks.MockUserService, subs *mocks.MockSubscriptionService) http.Handler {
	uh := NewUserHandler(users, quietLogger())
	sh := NewSubscriptionHandler(subs, quietLogger())

	r := chi.NewRouter()
	r.Route("/users", func(r chi.Router) {
		r.Post("/", uh.CreateUser)
		r.Get("/", uh.ListUsers)
		r.Get("/{id}", uh.GetUser)
		r.Put("/{id}", uh.UpdateUser)
		r.Delete("/{id}", uh.DeleteUser)
	})
	r.Route("/subscriptions", func(r chi.Router) {
		r.Get("/top", sh.GetTopSubscriptions)
		r.Post("/users/{userId}", sh.AddSubscription)
		r.Get("/users/{userId}", sh.GetUserSubscriptions)
		r.Delete("/{subscriptionId}/users/{userId}", sh.DeleteSubscription)
	})
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), "body: %s", rr.Body.String())
	return resp
}
