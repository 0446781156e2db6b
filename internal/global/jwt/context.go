package jwt

import (
	"github.com/gin-gonic/gin"
)

const payloadKey = "payload"

func SetUserPayload(c *gin.Context, payload *Claims) {
	c.Set(payloadKey, payload)
}

func GetUserPayload(c *gin.Context) (userPayload *Claims, exist bool) {
	payload, _ := c.Get(payloadKey)
	userPayload, exist = payload.(*Claims)
	return
}
