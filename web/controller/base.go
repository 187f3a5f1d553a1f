// Package controller provides HTTP request handlers for the Tatar SMS
// web panel: login and registration, the chat feed, and the admin
// moderation endpoints.
package controller

import (
	"net/http"

	"github.com/kokorindanilll2288-sys/rdss.github.io/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides common functionality for all controllers,
// including authentication checks.
type BaseController struct{}

// checkLogin is a middleware that verifies user authentication and
// handles unauthorized access.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		if isAjax(c) {
			pureJsonMsg(c, http.StatusUnauthorized, false, "Войдите заново")
		} else {
			c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path"))
		}
		c.Abort()
	} else {
		c.Next()
	}
}

// checkAdmin is a middleware that restricts moderation routes to admin
// accounts.
func (a *BaseController) checkAdmin(c *gin.Context) {
	if !session.IsAdmin(c) {
		pureJsonMsg(c, http.StatusForbidden, false, "Доступно только администратору")
		c.Abort()
	} else {
		c.Next()
	}
}
