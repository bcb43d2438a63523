package handlers

import "github.com/gin-gonic/gin"

// internalError records err for the request logger and aborts with status.
func internalError(c *gin.Context, status int, body any, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}
