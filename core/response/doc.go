// Package response provides handler.Response constructors for text, JSON and
// error replies, plus error handlers that map errors to HTTP statuses.
//
//	func show(ctx *handler.BaseContext) handler.Response {
//		sess := middleware.MustGetSession(ctx)
//		id, ok := sess.GetInt("user_id")
//		if !ok {
//			return response.Error(response.ErrUnauthorized)
//		}
//		return response.JSON(map[string]any{"user_id": id})
//	}
//
// Errors implementing StatusCode() int keep their status when rendered by
// ErrorHandler or JSONErrorHandler. Other errors become 500.
package response
