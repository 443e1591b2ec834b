// Package domain contains the core business entities of the subscriptions
// service: users, the named services they subscribe to, and the
// subscriptions linking the two. Entities validate themselves and carry no
// knowledge of storage or transport.
package domain
