// Package token issues and verifies the signed identity tokens the http
// middleware uses to resolve the acting caller. It is a thin wrapper around
// golang-jwt supporting HS256 and Ed25519.
package token
