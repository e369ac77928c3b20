package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCallUnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bot tok" {
			t.Errorf("Authorization = %q, want %q", got, "Bot tok")
		}
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		w.Write([]byte(`{"code":0,"message":"","data":{"url":"wss://gateway.example"}}`))
	}))
	defer srv.Close()

	c := NewClient("tok", WithBaseURL(srv.URL+"/"))
	gw, err := c.Gateway(context.Background(), false)
	if err != nil {
		t.Fatalf("Gateway: %v", err)
	}
	if gw != "wss://gateway.example" {
		t.Fatalf("gateway url = %q", gw)
	}
}

func TestCallBusinessError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":40000,"message":"bad param","data":{}}`))
	}))
	defer srv.Close()

	c := NewClient("tok", WithBaseURL(srv.URL+"/"))
	_, err := c.Call(context.Background(), "message/create", map[string]any{"target_id": "1"})
	var af *ActionFailed
	if !errors.As(err, &af) {
		t.Fatalf("err = %v, want *ActionFailed", err)
	}
	if af.Code != 40000 || af.Message != "bad param" {
		t.Fatalf("ActionFailed = %+v", af)
	}
}

func TestCallStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		check  func(error) bool
	}{
		{401, func(err error) bool { var e *UnauthorizedError; return errors.As(err, &e) }},
		{403, func(err error) bool { var e *UnauthorizedError; return errors.As(err, &e) }},
		{404, func(err error) bool { return errors.Is(err, ErrAPINotAvailable) }},
		{405, func(err error) bool { return errors.Is(err, ErrAPINotAvailable) }},
		{429, func(err error) bool { var e *RateLimitError; return errors.As(err, &e) }},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		c := NewClient("tok", WithBaseURL(srv.URL+"/"))
		_, err := c.Call(context.Background(), "user/me", nil)
		if err == nil || !tt.check(err) {
			t.Errorf("status %d: err = %v, wrong type", tt.status, err)
		}
		srv.Close()
	}
}

func TestCallEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient("tok", WithBaseURL(srv.URL+"/"))
	_, err := c.Call(context.Background(), "user/me", nil)
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("err = %v, want ErrEmptyResponse", err)
	}
}

func TestCallGETEncodesQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"code":0,"message":"","data":{}}`))
	}))
	defer srv.Close()

	c := NewClient("tok", WithBaseURL(srv.URL+"/"))
	if _, err := c.Call(context.Background(), "guild/list", map[string]any{"page": 2}); err != nil {
		t.Fatalf("Call: %v", err)
	}
	if gotQuery != "page=2" {
		t.Fatalf("query = %q, want page=2", gotQuery)
	}
}

func TestCallTypedUsesRouteTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":0,"message":"","data":{"id":"42","username":"bot","bot":true}}`))
	}))
	defer srv.Close()

	c := NewClient("tok", WithBaseURL(srv.URL+"/"))
	res, err := c.CallTyped(context.Background(), "user/me", nil)
	if err != nil {
		t.Fatalf("CallTyped: %v", err)
	}
	u, ok := res.(*User)
	if !ok {
		t.Fatalf("result type = %T, want *User", res)
	}
	if u.ID != "42" || !u.Bot {
		t.Fatalf("user = %+v", u)
	}
}

func TestUploadAssetMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
		} else {
			f.Close()
			if hdr.Filename != "pic.png" {
				t.Errorf("filename = %q", hdr.Filename)
			}
		}
		w.Write([]byte(`{"code":0,"message":"","data":{"url":"https://img.example/a.png"}}`))
	}))
	defer srv.Close()

	c := NewClient("tok", WithBaseURL(srv.URL+"/"))
	u, err := c.UploadAsset(context.Background(), "pic.png", []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("UploadAsset: %v", err)
	}
	if u != "https://img.example/a.png" {
		t.Fatalf("url = %q", u)
	}
}

func TestMethodDefaultsToPOST(t *testing.T) {
	if got := Method("guild/list"); got != http.MethodGet {
		t.Errorf("Method(guild/list) = %s, want GET", got)
	}
	if got := Method("brand/new-endpoint"); got != http.MethodPost {
		t.Errorf("Method(unknown) = %s, want POST", got)
	}
}
