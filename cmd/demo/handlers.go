package main

import (
	"strconv"

	"github.com/dmitrymomot/cookiestore/core/handler"
	"github.com/dmitrymomot/cookiestore/core/response"
	"github.com/dmitrymomot/cookiestore/core/value"
	"github.com/dmitrymomot/cookiestore/middleware"
)

func me(ctx *handler.BaseContext) handler.Response {
	sess := middleware.MustGetSession(ctx)

	userID, ok := sess.GetInt("user_id")
	if !ok {
		return response.Error(response.ErrUnauthorized)
	}

	flashes := make([]any, 0)
	for _, f := range sess.Flashes() {
		flashes = append(flashes, f.Interface())
	}

	return response.JSON(map[string]any{
		"user_id":    userID,
		"session_id": sess.ID(),
		"flashes":    flashes,
	})
}

func login(ctx *handler.BaseContext) handler.Response {
	userID, err := strconv.ParseInt(ctx.Request().FormValue("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		return response.Error(response.ErrBadRequest.WithMessage("user_id must be a positive integer"))
	}

	sess := middleware.MustGetSession(ctx)
	sess.Reset()
	sess.Set("user_id", value.Int(userID))
	sess.AddFlash(value.String("signed in"))

	return response.NoContent()
}

func logout(ctx *handler.BaseContext) handler.Response {
	middleware.MustGetSession(ctx).Destroy()
	return response.NoContent()
}

func addFlash(ctx *handler.BaseContext) handler.Response {
	msg := ctx.Request().FormValue("message")
	if msg == "" {
		return response.Error(response.ErrBadRequest.WithMessage("message is required"))
	}

	middleware.MustGetSession(ctx).AddFlash(value.String(msg))
	return response.NoContent()
}
