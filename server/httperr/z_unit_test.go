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

package httperr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zintix-labs/casinolab/auth"
	"github.com/zintix-labs/casinolab/errs"
	"github.com/zintix-labs/casinolab/session"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{errs.Wrap(session.ErrInsufficientBalance, "spin"), http.StatusBadRequest},
		{errs.Wrap(session.ErrNotFound, "load"), http.StatusUnauthorized},
		{auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{errs.NewFatal("boom"), http.StatusInternalServerError},
		{errs.WarnWrap(context.DeadlineExceeded, "spin"), http.StatusGatewayTimeout},
		{context.Canceled, http.StatusRequestTimeout},
	}
	for i, c := range cases {
		if got := StatusCode(c.err); got != c.want {
			t.Fatalf("case %d: got %d want %d", i, got, c.want)
		}
	}
}

func TestWriteHidesFatal(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, "req-1", errs.NewFatal("db password is hunter2"))
	var b Body
	if err := json.NewDecoder(rec.Body).Decode(&b); err != nil {
		t.Fatal(err)
	}
	if rec.Code != 500 || b.Error != "Internal Server Error" || b.RequestID != "req-1" {
		t.Fatalf("unexpected body %+v", b)
	}
}

func TestWriteWarnMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, "", errs.Wrap(session.ErrInsufficientBalance, "balance 5 stake 10"))
	var b Body
	_ = json.NewDecoder(rec.Body).Decode(&b)
	if rec.Code != 400 || b.Error != "balance 5 stake 10: insufficient balance" || b.Level != "warn" {
		t.Fatalf("unexpected body %+v", b)
	}
}
