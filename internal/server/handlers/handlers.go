// Package handlers adapts the inventory services onto HTTP. Handlers map
// guard violations to 4xx responses carrying a user-facing message; only
// persistence failures surface as 500.
package handlers

import "github.com/gin-gonic/gin"

// DefaultSession is the session id assumed when a client does not supply
// one. Single-user deployments never need to mint sessions explicitly.
const DefaultSession = "default"

type errorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, errorResponse{Error: true, Message: message})
}
