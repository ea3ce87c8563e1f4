package middleware

import "github.com/gin-gonic/gin"

// NoCache stops browsers and proxies from caching API responses so admin
// edits show up on the storefront immediately.
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate, private")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Next()
	}
}
