// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file resolves the acting user for a request. The deployment sits
// behind an authenticating proxy that injects the verified account id as the
// X-User-ID header; Principal() parses it once per request and stores it in
// the Gin context for handlers, logging, and rate limiting. Requests without
// the header proceed as anonymous.
package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// userIDKey is the Gin context key under which the acting user id is stored.
const userIDKey = "userID"

// headerUserID is the trusted identity header set by the auth proxy.
const headerUserID = "X-User-ID"

// Principal parses the X-User-ID header into a numeric account id and stores
// it under the "userID" context key as a uint. A missing, empty, zero, or
// non-numeric header leaves the context unset (anonymous request); endpoint
// handlers decide whether anonymity is acceptable.
func Principal() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := strings.TrimSpace(c.GetHeader(headerUserID)); raw != "" {
			if n, err := strconv.ParseUint(raw, 10, 32); err == nil && n != 0 {
				c.Set(userIDKey, uint(n))
			}
		}
		c.Next()
	}
}
