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

package dto

import (
	"strings"
	"testing"
	"time"

	"github.com/zintix-labs/casinolab/errs"
	"github.com/zintix-labs/casinolab/session"
	"github.com/zintix-labs/casinolab/spec"
)

func TestValidateLogin(t *testing.T) {
	if err := Validate(LoginRequest{Username: "amy", Password: "pw"}); err != nil {
		t.Fatal(err)
	}
	err := Validate(LoginRequest{Password: strings.Repeat("x", 129)})
	if errs.LevelOf(err) != errs.Warn {
		t.Fatalf("expected warn, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "username is required") || !strings.Contains(msg, "password must be at most 128") {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestValidateSpinAndTicket(t *testing.T) {
	if err := Validate(SpinRequest{Stake: 0}); err == nil {
		t.Fatalf("zero stake should fail")
	}
	if err := Validate(TicketRequest{}); err != nil {
		t.Fatalf("empty ticket request means quick pick: %v", err)
	}
	if err := Validate(TicketRequest{Numbers: []int{1, 2, 0}}); err == nil {
		t.Fatalf("non-positive number should fail")
	}
}

func TestValidatePatch(t *testing.T) {
	neg := -1
	if err := Validate(SessionPatch{Balance: &neg}); err == nil {
		t.Fatalf("negative balance should fail")
	}
	name := "bella"
	p := SessionPatch{Name: &name}
	if err := Validate(p); err != nil {
		t.Fatal(err)
	}
	if *p.ToPatch().Name != "bella" || p.ToPatch().Balance != nil {
		t.Fatalf("patch conversion lost fields")
	}
}

func TestNewSessionView(t *testing.T) {
	s := session.New(session.User{Name: "amy"}, 100, time.Unix(0, 0))
	s.Jackpots[spec.GID(1)] = 5200
	v := NewSessionView(s)
	if v.SessionID != s.ID || v.Jackpots["1"] != 5200 || v.Tickets == nil {
		t.Fatalf("unexpected view %+v", v)
	}
}
