//go:build unit || e2e

package httptest

import (
	"net/http"
	"net/http/httptest"
)

func ExtractCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}
