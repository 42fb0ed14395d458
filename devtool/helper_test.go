package devtool_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func newRequest(t *testing.T, target string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		t.Fatal(err)
	}
	return req, httptest.NewRecorder()
}
