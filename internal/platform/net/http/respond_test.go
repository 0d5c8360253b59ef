package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "vitalog/internal/platform/errors"
	pnet "vitalog/internal/platform/net"
	phttp "vitalog/internal/platform/net/http"
)

// helper to build a request with a request_id in context
func reqWithReqID(method, path, rid string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	return req.WithContext(pnet.WithRequestID(req.Context(), rid))
}

func serve(t *testing.T, resp phttp.Response, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	phttp.Handle(func(*http.Request) phttp.Response { return resp })(rec, req)
	return rec
}

func TestRespondOKCreatedNoContent(t *testing.T) {
	req := reqWithReqID("GET", "/x", "rid-1")

	rec := serve(t, phttp.OK(map[string]string{"a": "b"}), req)
	if rec.Code != http.StatusOK {
		t.Fatalf("OK code: %d", rec.Code)
	}
	var env phttp.Envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if env.StatusCode != 200 || env.RequestID != "rid-1" || env.Data == nil {
		t.Fatalf("bad envelope: %+v", env)
	}

	rec = serve(t, phttp.Created(map[string]int{"id": 7}), req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Created code: %d", rec.Code)
	}

	// NoContent should not write a JSON body
	rec = serve(t, phttp.NoContent(), req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("NoContent code: %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("NoContent should have empty body, got %q", rec.Body.String())
	}
}

func TestRespondError(t *testing.T) {
	req := reqWithReqID("GET", "/missing", "rid-2")

	rec := serve(t, phttp.Error(perr.NotFoundf("no such thing")), req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Error code: %d", rec.Code)
	}
	var env phttp.Envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if env.Code != perr.ErrorCodeNotFound || env.Error == "" || env.RequestID != "rid-2" {
		t.Fatalf("bad error envelope: %+v", env)
	}
	if env.Data != nil {
		t.Fatalf("error envelope must not carry data: %+v", env)
	}
}
