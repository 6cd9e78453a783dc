// Package handler exposes the tracker over HTTP with gin.
package handler

import "github.com/gin-gonic/gin"

func fail(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"ok": false, "error": err.Error()})
}

func ok(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}
