package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(headers map[string]string, remoteAddr string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = remoteAddr
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}
	return c
}

func TestGetRemoteIp(t *testing.T) {
	c := testContext(nil, "10.0.0.1:1234")
	assert.Equal(t, "10.0.0.1", getRemoteIp(c))

	c = testContext(map[string]string{"X-Real-IP": "203.0.113.7"}, "10.0.0.1:1234")
	assert.Equal(t, "203.0.113.7", getRemoteIp(c))

	// Multi-proxy chains report the client as the first hop.
	c = testContext(map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2, 10.0.0.3"}, "10.0.0.1:1234")
	assert.Equal(t, "203.0.113.7", getRemoteIp(c))
}
