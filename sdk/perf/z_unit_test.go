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

package perf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/zintix-labs/casinolab/errs"
)

func TestRunWritesProfile(t *testing.T) {
	dir := t.TempDir()
	ran := false
	if err := Run(dir, ModeHeap, func() error { ran = true; return nil }); err != nil {
		t.Fatal(err)
	}
	if !ran {
		t.Fatalf("exe not called")
	}
	fi, err := os.Stat(filepath.Join(dir, "heap.pprof"))
	if err != nil || fi.Size() == 0 {
		t.Fatalf("heap profile not written: %v", err)
	}
}

func TestRunPassesError(t *testing.T) {
	want := errors.New("boom")
	if err := Run(t.TempDir(), ModeAllocs, func() error { return want }); !errors.Is(err, want) {
		t.Fatalf("expected exe error, got %v", err)
	}
	if err := Run(t.TempDir(), "trace", func() error { return nil }); errs.LevelOf(err) != errs.Warn {
		t.Fatalf("unknown mode should be warn, got %v", err)
	}
}
