package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/subscriptions-api/internal/api"
	"github.com/phrazzld/subscriptions-api/internal/testdb"
	"github.com/phrazzld/subscriptions-api/internal/testutils"
)

// TestAPI_Integration drives every endpoint through the real router,
// services and stores. Data is committed, so tables are emptied up front.
func TestAPI_Integration(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	_, err := db.Exec("TRUNCATE subscriptions, services, users RESTART IDENTITY CASCADE")
	require.NoError(t, err)

	app := newApplication(testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)), &dbConn{DB: db})
	server := testutils.CreateTestServer(t, app.setupRouter())

	createUser := func(name string) api.UserResponse {
		var u api.UserResponse
		resp := testutils.ExecuteJSONRequest(t, server, http.MethodPost, "/users",
			api.UserRequest{Name: name, Email: name + "@example.com"})
		testutils.DecodeJSONResponse(t, resp, http.StatusCreated, &u)
		return u
	}
	subscribe := func(userID int64, service string) api.SubscriptionResponse {
		var s api.SubscriptionResponse
		resp := testutils.ExecuteJSONRequest(t, server, http.MethodPost,
			fmt.Sprintf("/subscriptions/users/%d", userID), api.SubscriptionRequest{ServiceName: service})
		testutils.DecodeJSONResponse(t, resp, http.StatusCreated, &s)
		return s
	}

	// No data yet.
	resp := testutils.ExecuteJSONRequest(t, server, http.MethodGet, "/subscriptions/top", nil)
	testutils.AssertErrorResponse(t, resp, http.StatusNotFound, "No subscriptions found")

	ada := createUser("ada")
	grace := createUser("grace")
	require.NotZero(t, ada.ID)

	var fetched api.UserResponse
	resp = testutils.ExecuteJSONRequest(t, server, http.MethodGet, fmt.Sprintf("/users/%d", ada.ID), nil)
	testutils.DecodeJSONResponse(t, resp, http.StatusOK, &fetched)
	assert.Equal(t, ada, fetched)

	var updated api.UserResponse
	resp = testutils.ExecuteJSONRequest(t, server, http.MethodPut, fmt.Sprintf("/users/%d", ada.ID),
		api.UserRequest{Name: "Ada Lovelace", Email: "ada@lovelace.dev"})
	testutils.DecodeJSONResponse(t, resp, http.StatusOK, &updated)
	assert.Equal(t, api.UserResponse{ID: ada.ID, Name: "Ada Lovelace", Email: "ada@lovelace.dev"}, updated)

	first := subscribe(ada.ID, "Netflix")
	second := subscribe(ada.ID, "Netflix")
	assert.NotEqual(t, first.ID, second.ID)
	subscribe(grace.ID, "Spotify")

	var subs []api.SubscriptionResponse
	resp = testutils.ExecuteJSONRequest(t, server, http.MethodGet, fmt.Sprintf("/subscriptions/users/%d", ada.ID), nil)
	testutils.DecodeJSONResponse(t, resp, http.StatusOK, &subs)
	assert.Equal(t, []api.SubscriptionResponse{first, second}, subs)

	var top []string
	resp = testutils.ExecuteJSONRequest(t, server, http.MethodGet, "/subscriptions/top", nil)
	testutils.DecodeJSONResponse(t, resp, http.StatusOK, &top)
	assert.Equal(t, []string{"Netflix", "Spotify"}, top)

	// Grace cannot delete Ada's subscription.
	resp = testutils.ExecuteJSONRequest(t, server, http.MethodDelete,
		fmt.Sprintf("/subscriptions/%d/users/%d", first.ID, grace.ID), nil)
	testutils.AssertErrorResponse(t, resp, http.StatusBadRequest, "does not belong to user")

	resp = testutils.ExecuteJSONRequest(t, server, http.MethodDelete,
		fmt.Sprintf("/subscriptions/%d/users/%d", first.ID, ada.ID), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = testutils.ExecuteJSONRequest(t, server, http.MethodDelete,
		fmt.Sprintf("/subscriptions/%d/users/%d", first.ID, ada.ID), nil)
	testutils.AssertErrorResponse(t, resp, http.StatusNotFound, fmt.Sprintf("Subscription with ID %d not found", first.ID))

	resp = testutils.ExecuteJSONRequest(t, server, http.MethodDelete, fmt.Sprintf("/users/%d", ada.ID), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = testutils.ExecuteJSONRequest(t, server, http.MethodGet, fmt.Sprintf("/subscriptions/users/%d", ada.ID), nil)
	testutils.AssertErrorResponse(t, resp, http.StatusNotFound, fmt.Sprintf("User with ID %d not found", ada.ID))

	resp = testutils.ExecuteJSONRequest(t, server, http.MethodPost, "/subscriptions/users/999999", api.SubscriptionRequest{ServiceName: "Hulu"})
	testutils.AssertErrorResponse(t, resp, http.StatusNotFound, "User with ID 999999 not found")

	resp = testutils.ExecuteJSONRequest(t, server, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
