// Package service implements the business rules of the subscriptions API:
// existence and ownership checks, transactional orchestration across
// stores, and retry of operations that lost a race against a concurrent
// request. Services depend only on the store interfaces and are safe for
// concurrent use.
package service
