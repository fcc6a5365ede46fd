// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/zintix-labs/casinolab/errs"
	"golang.org/x/crypto/bcrypt"
)

func newWebhookServer(t *testing.T, h http.HandlerFunc) *Webhook {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	w, err := NewWebhook(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	w.RetryDelay = 0
	return w
}

func TestWebhookSuccess(t *testing.T) {
	w := newWebhookServer(t, func(rw http.ResponseWriter, r *http.Request) {
		var req webhookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.Username != "amy" || req.Password != "pw" {
			t.Errorf("credentials should be trimmed, got %+v", req)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("missing content type")
		}
		_, _ = rw.Write([]byte(`{"success":true,"user":{"Name":"Amy","Current Account Balance":"1500.75","id":42}}`))
	})
	p, err := w.Authenticate(context.Background(), " amy ", "pw ")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Amy" || p.Balance != 1500 || p.ID != "42" {
		t.Fatalf("unexpected profile %+v", p)
	}
}

func TestWebhookRejected(t *testing.T) {
	w := newWebhookServer(t, func(rw http.ResponseWriter, r *http.Request) {
		_, _ = rw.Write([]byte(`{"success":false,"message":"bouncer says no"}`))
	})
	_, err := w.Authenticate(context.Background(), "amy", "bad")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if errs.LevelOf(err) != errs.Warn || !strings.Contains(err.Error(), "bouncer says no") {
		t.Fatalf("rejection should be warn and carry the message: %v", err)
	}
}

func TestWebhookMalformed(t *testing.T) {
	w := newWebhookServer(t, func(rw http.ResponseWriter, r *http.Request) {
		_, _ = rw.Write([]byte(`<html>oops</html>`))
	})
	_, err := w.Authenticate(context.Background(), "amy", "pw")
	if err == nil || errors.Is(err, ErrInvalidCredentials) || errs.LevelOf(err) != errs.Fatal {
		t.Fatalf("malformed body should be fatal, got %v", err)
	}
}

func TestWebhookRetriesServerError(t *testing.T) {
	var calls atomic.Int32
	w := newWebhookServer(t, func(rw http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			rw.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = rw.Write([]byte(`{"success":true,"user":{"Name":"Amy","Current Account Balance":900,"id":"u-1"}}`))
	})
	p, err := w.Authenticate(context.Background(), "amy", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 2 || p.Balance != 900 || p.ID != "u-1" {
		t.Fatalf("calls %d profile %+v", calls.Load(), p)
	}
}

func TestWebhookGivesUp(t *testing.T) {
	w := newWebhookServer(t, func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusServiceUnavailable)
	})
	w.Retries = 1
	if _, err := w.Authenticate(context.Background(), "a", "b"); errs.LevelOf(err) != errs.Fatal {
		t.Fatalf("exhausted retries should be fatal, got %v", err)
	}
}

func TestNewWebhookRejectsBadURL(t *testing.T) {
	if _, err := NewWebhook("ftp://x"); errs.LevelOf(err) != errs.Fatal {
		t.Fatalf("bad url should be fatal")
	}
}

func TestStatic(t *testing.T) {
	var a Authenticator = NewStatic().Add("amy", "pw", Profile{Balance: 1000, ID: "1"})
	p, err := a.Authenticate(context.Background(), "amy ", " pw")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "amy" || p.Balance != 1000 {
		t.Fatalf("unexpected profile %+v", p)
	}
	if _, err := a.Authenticate(context.Background(), "amy", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password should be rejected")
	}
}

func TestStaticAddHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	a := NewStatic().AddHash("bob", hash, Profile{Name: "Bob"})
	if _, err := a.Authenticate(context.Background(), "bob", "secret"); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Authenticate(context.Background(), "nobody", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user should be rejected")
	}
}
