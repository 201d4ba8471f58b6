// Package common contains shared constants and sentinel errors used across
// Pentalign backend components.
package common

// AccessTokenHeaderName is the HTTP request header that carries the access
// token. An absent header means the request is unauthenticated, not an error.
const AccessTokenHeaderName = "penta-auth-token"
