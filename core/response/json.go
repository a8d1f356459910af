package response

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/cookiestore/core/handler"
)

// JSON creates an application/json response with 200 OK status.
func JSON(v any) handler.Response {
	return JSONWithStatus(v, http.StatusOK)
}

// JSONWithStatus creates an application/json response with custom status code.
// A zero status means 200, or 204 when v is nil.
//
// The body is marshaled before anything is written, so an encoding failure
// reaches the error handler while headers are still uncommitted.
func JSONWithStatus(v any, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if status == 0 {
			if v == nil {
				status = http.StatusNoContent
			} else {
				status = http.StatusOK
			}
		}

		var body []byte
		switch status {
		case http.StatusNoContent, http.StatusNotModified:
		default:
			var err error
			if body, err = json.Marshal(v); err != nil {
				return err
			}
			body = append(body, '\n')
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		if len(body) == 0 {
			return nil
		}

		_, err := w.Write(body)
		return err
	}
}
