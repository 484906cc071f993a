// Copyright 2015 Google Inc.
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

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	want := Config{
		Indent:                        2,
		IndentCaseOtherwise:           true,
		IndentMainFunction:            false,
		IndentLocalFunction:           false,
		IndentNestedFunction:          true,
		OmitSpaceAfterComma:           true,
		OmitSpaceAfterCommaMaxLength:  1,
		OmitSpaceAroundColon:          true,
		OmitSpaceAroundColonMaxLength: 5,
		NewlineAtEndOfFile:            true,
	}
	if diff := cmp.Diff(want, Default()); diff != "" {
		t.Errorf("Default() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	defer func(orig func(string) ([]byte, error)) { readFile = orig }(readFile)
	readFile = func(name string) ([]byte, error) {
		return []byte(`{"indent": 4, "omitSpaceAfterComma": false}`), nil
	}

	got, err := Load("/fake/.mformat.json")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Default()
	want.Indent = 4
	want.OmitSpaceAfterComma = false
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadUnknownKeysIgnored(t *testing.T) {
	defer func(orig func(string) ([]byte, error)) { readFile = orig }(readFile)
	readFile = func(name string) ([]byte, error) {
		return []byte(`{"notAField": true, "indent": 3}`), nil
	}

	got, err := Load("/fake/.mformat.json")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Indent != 3 {
		t.Errorf("Load().Indent = %d, want 3", got.Indent)
	}
}

func TestLoadMalformedJSONIsError(t *testing.T) {
	defer func(orig func(string) ([]byte, error)) { readFile = orig }(readFile)
	readFile = func(name string) ([]byte, error) {
		return []byte(`{not valid json`), nil
	}

	if _, err := Load("/fake/.mformat.json"); err == nil {
		t.Error("Load() with malformed JSON returned a nil error")
	}
}

func TestLoadReadError(t *testing.T) {
	defer func(orig func(string) ([]byte, error)) { readFile = orig }(readFile)
	wantErr := errors.New("boom")
	readFile = func(name string) ([]byte, error) { return nil, wantErr }

	if _, err := Load("/fake/.mformat.json"); !errors.Is(err, wantErr) {
		t.Errorf("Load() error = %v, want wrapping %v", err, wantErr)
	}
}

func TestSearchFindsAncestorConfig(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(dir, FileName)
	if err := os.WriteFile(configPath, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	codeFile := filepath.Join(sub, "script.m")
	got, ok := Search(codeFile)
	if !ok {
		t.Fatalf("Search(%q) ok = false, want true", codeFile)
	}
	if got != configPath {
		t.Errorf("Search(%q) = %q, want %q", codeFile, got, configPath)
	}
}

func TestSearchNoConfigFound(t *testing.T) {
	dir := t.TempDir()
	codeFile := filepath.Join(dir, "script.m")
	if _, ok := Search(codeFile); ok {
		t.Error("Search() ok = true in a directory tree with no .mformat.json, want false")
	}
}
