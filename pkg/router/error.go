package router

import "net/http"

// JsonError is an error that knows its HTTP status code and renders itself as
// a JSON body. Handlers may return one directly, or return a plain error and
// let a registered mapper translate it.
type JsonError struct {
	Code int    `json:"code"`
	Err  string `json:"error"`
}

func NewJsonError(code int, err string) JsonError {
	return JsonError{Code: code, Err: err}
}

func (e JsonError) Error() string {
	return e.Err
}

var DefaultError = JsonError{
	Code: http.StatusInternalServerError,
	Err:  "internal server error",
}
