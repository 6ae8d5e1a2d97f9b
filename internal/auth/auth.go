// Package auth is the admin gate: one shared secret, re-presented on
// every protected call. No sessions, no tokens.
package auth

import "crypto/subtle"

type Admin struct {
	secret string
}

func NewAdmin(secret string) *Admin {
	return &Admin{secret: secret}
}

// Check compares a presented credential in constant time. A failed
// check reveals nothing about the protected resources.
func (a *Admin) Check(credential string) bool {
	return subtle.ConstantTimeCompare([]byte(a.secret), []byte(credential)) == 1
}
