// Package api holds the gin handlers of the cookbook HTTP API. Handlers bind
// input, call a service and attach failures with c.Error; the error
// middleware renders them.
package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/cookbook/backend/internal/middleware"
	"github.com/pageza/cookbook/backend/internal/types"
)

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(middleware.BadRequest(err))
		return false
	}
	return true
}

func indexParam(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		_ = c.Error(middleware.BadRequest(err))
		return 0, false
	}
	return index, true
}

func owner(c *gin.Context) *types.CurrentUser {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil
	}
	return &user
}
