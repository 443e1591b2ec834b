// Package api exposes the users and subscriptions resources over HTTP/JSON.
// Handlers decode and validate requests, call the service layer, map
// entities to response models and translate errors into status codes
// without leaking internal details.
package api
