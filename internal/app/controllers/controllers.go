// Package controllers handles HTTP request handling
package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/traineehub/internal/app/auth"
	"github.com/yigit/traineehub/internal/middleware"
)

// requestScope resolves the caller's trainee visibility, writing a 403 when the role has none.
func requestScope(ctx *gin.Context) (auth.Scope, bool) {
	scope, err := middleware.CurrentScope(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return auth.Scope{}, false
	}
	return scope, true
}
