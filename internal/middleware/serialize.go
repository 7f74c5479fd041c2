package middleware

import (
	"sync"

	"github.com/gin-gonic/gin"
)

// Serialize runs the wrapped handlers one request at a time. Registry getters
// hand out live objects, so rendering them must not overlap a mutation.
func Serialize() gin.HandlerFunc {
	var mu sync.Mutex
	return func(c *gin.Context) {
		mu.Lock()
		defer mu.Unlock()
		c.Next()
	}
}
