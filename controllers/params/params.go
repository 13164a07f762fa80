// Package params holds the request parsing shared by the handlers.
package params

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"speclab-backend/apierr"
)

const (
	DefaultLimit     = 100
	MaxLimit         = 1000
	DefaultPageLimit = 20
)

// Window is the skip/limit pair of the public list endpoints.
type Window struct {
	Skip  int `form:"skip" binding:"min=0"`
	Limit int `form:"limit" binding:"min=0,max=1000"`
}

// Paging is the page/limit/search triple of the admin list endpoints.
type Paging struct {
	Page   int    `form:"page" binding:"min=0"`
	Limit  int    `form:"limit" binding:"min=0,max=100"`
	Search string `form:"search"`
}

func BindWindow(c *gin.Context) (Window, error) {
	var w Window
	if err := c.ShouldBindQuery(&w); err != nil {
		return w, apierr.BadRequest("skip/limit 값이 올바르지 않습니다")
	}
	if w.Limit == 0 {
		w.Limit = DefaultLimit
	}
	return w, nil
}

func BindPaging(c *gin.Context) (Paging, error) {
	var p Paging
	if err := c.ShouldBindQuery(&p); err != nil {
		return p, apierr.BadRequest("page/limit 값이 올바르지 않습니다")
	}
	if p.Page == 0 {
		p.Page = 1
	}
	if p.Limit == 0 {
		p.Limit = DefaultPageLimit
	}
	return p, nil
}

// ID parses a positive integer path parameter.
func ID(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || v == 0 {
		return 0, apierr.BadRequest("잘못된 " + name + " 입니다")
	}
	return uint(v), nil
}

// BindJSON decodes the body, reporting malformed input as 400.
func BindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apierr.BadRequest("요청 본문이 올바르지 않습니다")
	}
	return nil
}
