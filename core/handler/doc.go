// Package handler defines the request handling contract: a Context carrying
// the request and response writer, handlers that return a lazily rendered
// Response, and composable Middleware.
//
//	func hello(ctx *handler.BaseContext) handler.Response {
//		return response.String("hello")
//	}
//
//	http.Handle("GET /hello", handler.Handle(hello, middleware.Session[*handler.BaseContext](store)))
//
// Because a Response renders only after the middleware chain returns,
// middleware can still set headers such as cookies once the handler is done.
//
// Serve accepts custom context types through ServeConfig.NewContext. Errors
// returned while rendering go to ServeConfig.ErrorHandler. The default
// handler writes plain text and uses the error's StatusCode() when present.
package handler
