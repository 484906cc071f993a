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

// Package config defines the formatter's configuration record (spec §6):
// the field set, built-in defaults, discovery of a ".mformat.json" file by
// walking up from an input file's directory, and load/save of that file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the recognised configuration file name (spec §6).
const FileName = ".mformat.json"

// Config holds every option the formatter consults. Each field's json tag
// is its key in the configuration file.
type Config struct {
	Indent                        int  `json:"indent"`
	IndentCaseOtherwise           bool `json:"indentCaseOtherwise"`
	IndentMainFunction            bool `json:"indentMainFunction"`
	IndentLocalFunction           bool `json:"indentLocalFunction"`
	IndentNestedFunction          bool `json:"indentNestedFunction"`
	OmitSpaceAfterComma           bool `json:"omitSpaceAfterComma"`
	OmitSpaceAfterCommaMaxLength  int  `json:"omitSpaceAfterCommaMaxLength"`
	OmitSpaceAroundColon          bool `json:"omitSpaceAroundColon"`
	OmitSpaceAroundColonMaxLength int  `json:"omitSpaceAroundColonMaxLength"`
	NewlineAtEndOfFile            bool `json:"newlineAtEndOfFile"`
}

// Default returns the built-in configuration (spec §6's defaults column).
func Default() Config {
	return Config{
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
}

// readFile makes testing of Load easier, following the same
// seam the teacher's findFile uses for its own file reads.
var readFile = os.ReadFile

// Search walks up from the directory containing codeFilePath looking for
// FileName, returning its path and true on the first match, matching the
// ancestor-walk in the teacher's findFile. It returns false, without error,
// if no configuration file is found by the time the walk reaches the
// filesystem root.
func Search(codeFilePath string) (string, bool) {
	dir, err := filepath.Abs(filepath.Dir(codeFilePath))
	if err != nil {
		return "", false
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Load reads and JSON-decodes filePath on top of the built-in defaults.
// Unknown keys are ignored silently (spec §6); a malformed field type or
// unparsable document is a fatal configuration error for that file (spec
// §7), returned as an error.
func Load(filePath string) (Config, error) {
	cfg := Default()
	data, err := readFile(filePath)
	if err != nil {
		return cfg, fmt.Errorf("mformat: reading config %s: %w", filePath, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("mformat: parsing config %s: %w", filePath, err)
	}
	return cfg, nil
}

// Save JSON-encodes cfg to filePath, mirroring the original implementation's
// Settings.save -- useful for a CLI --init-config flag that seeds a
// .mformat.json with the currently-effective options.
func Save(cfg Config, filePath string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("mformat: encoding config: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return fmt.Errorf("mformat: writing config %s: %w", filePath, err)
	}
	return nil
}
