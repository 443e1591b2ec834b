// Package testutils provides testing utilities shared across packages:
// builders for domain entities, inserts through the real PostgreSQL stores,
// and helpers for driving and asserting HTTP responses.
//
//	user := testutils.MustInsertUser(ctx, t, tx, "ada")
//	sub := testutils.MustInsertSubscription(ctx, t, tx, user.ID, "Netflix")
//
//	server := testutils.CreateTestServer(t, router)
//	resp := testutils.ExecuteJSONRequest(t, server, http.MethodGet, "/users/7", nil)
//	testutils.AssertErrorResponse(t, resp, http.StatusNotFound, "User with ID 7 not found")
package testutils
