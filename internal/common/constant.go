// Package common contains constants and sentinel errors shared by the
// client and the identity server.
package common

// AuthTokenHeaderName is the HTTP header that carries the access token.
const AuthTokenHeaderName = "x-auth-token"
