// Package middleware provides net/http middleware that resolves the acting
// caller from a bearer identity token and enforces engine guards (owner,
// admin, roles, pause) in front of handlers.
package middleware
