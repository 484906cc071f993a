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

// Program mformat formats MATLAB/Octave source files.
//
// Usage: mformat [options] PATH
//
// If PATH is a directory, every ".m" file found by walking it
// (subdirectories visited in sorted order) is formatted in turn. Otherwise
// PATH is read as a single file. Each file's formatted text is written to
// standard output; a "Processing '<path>'..." line is written to standard
// error first, mirroring the original tool's progress output.
//
// Configuration is resolved per file: built-in defaults, overridden by a
// ".mformat.json" found by searching upward from the file's directory,
// overridden in turn by whatever flags were given on the command line.
// Every boolean configuration field exposes both a "--foo" and a
// "--no-foo" flag; a numeric field takes a single integer argument.
package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kylelemons/godebug/pretty"
	"github.com/pborman/getopt"

	"github.com/mformat/mformat/internal/ast"
	"github.com/mformat/mformat/internal/config"
	"github.com/mformat/mformat/internal/formatter"
	"github.com/mformat/mformat/internal/indent"
	"github.com/mformat/mformat/internal/lexer"
	"github.com/mformat/mformat/internal/parser"
)

var stop = os.Exit

// boolOverride is the on/set-or-off/clear pair backing one "--foo" /
// "--no-foo" CLI flag; at most one of the two will be true once parsed,
// since the user gives at most one of the pair.
type boolOverride struct {
	set   bool
	clear bool
}

func (o boolOverride) apply(field *bool) {
	switch {
	case o.set:
		*field = true
	case o.clear:
		*field = false
	}
}

// intOverride distinguishes "flag not given" (opt nil or not seen) from
// "flag given as 0".
type intOverride struct {
	value int
	opt   getopt.Option
}

func (o intOverride) apply(field *int) {
	if o.opt != nil && o.opt.Seen() {
		*field = o.value
	}
}

// cliOverrides holds only the configuration fields the user actually
// named on the command line, so it can be layered on top of each file's
// own resolved configuration (spec: "CLI > config file > built-in
// defaults").
type cliOverrides struct {
	indent                        intOverride
	indentCaseOtherwise           boolOverride
	indentMainFunction            boolOverride
	indentLocalFunction           boolOverride
	indentNestedFunction          boolOverride
	omitSpaceAfterComma           boolOverride
	omitSpaceAfterCommaMaxLength  intOverride
	omitSpaceAroundColon          boolOverride
	omitSpaceAroundColonMaxLength intOverride
	newlineAtEndOfFile            boolOverride
}

func (o cliOverrides) applyTo(cfg *config.Config) {
	o.indent.apply(&cfg.Indent)
	o.indentCaseOtherwise.apply(&cfg.IndentCaseOtherwise)
	o.indentMainFunction.apply(&cfg.IndentMainFunction)
	o.indentLocalFunction.apply(&cfg.IndentLocalFunction)
	o.indentNestedFunction.apply(&cfg.IndentNestedFunction)
	o.omitSpaceAfterComma.apply(&cfg.OmitSpaceAfterComma)
	o.omitSpaceAfterCommaMaxLength.apply(&cfg.OmitSpaceAfterCommaMaxLength)
	o.omitSpaceAroundColon.apply(&cfg.OmitSpaceAroundColon)
	o.omitSpaceAroundColonMaxLength.apply(&cfg.OmitSpaceAroundColonMaxLength)
	o.newlineAtEndOfFile.apply(&cfg.NewlineAtEndOfFile)
}

// registerBoolFlag registers the "--name" / "--no-name" pair for a single
// boolean configuration field.
func registerBoolFlag(o *boolOverride, name, help string) {
	getopt.BoolVarLong(&o.set, name, 0, help)
	getopt.BoolVarLong(&o.clear, "no-"+name, 0, "disable --"+name)
}

// registerIntFlag registers a "--name N" flag for a single integer
// configuration field; the value is applied only if the flag is actually
// seen.
func registerIntFlag(o *intOverride, name, help string) {
	o.opt = getopt.IntVarLong(&o.value, name, 0, help, "N")
}

func main() {
	var overrides cliOverrides
	var initConfig, dumpAST, help bool

	registerIntFlag(&overrides.indent, "indent", "number of spaces per indentation level")
	registerBoolFlag(&overrides.indentCaseOtherwise, "indent-case-otherwise", "indent case/otherwise bodies one level deeper than their switch")
	registerBoolFlag(&overrides.indentMainFunction, "indent-main-function", "indent the body of a file's first (main) function")
	registerBoolFlag(&overrides.indentLocalFunction, "indent-local-function", "indent the body of a local (sibling) function")
	registerBoolFlag(&overrides.indentNestedFunction, "indent-nested-function", "indent the body of a function nested inside another")
	registerBoolFlag(&overrides.omitSpaceAfterComma, "omit-space-after-comma", "omit the space after a comma when every other argument is short")
	registerIntFlag(&overrides.omitSpaceAfterCommaMaxLength, "omit-space-after-comma-max-length", "maximum argument length still considered short")
	registerBoolFlag(&overrides.omitSpaceAroundColon, "omit-space-around-colon", "omit the spaces around a ':' range operator when its operands are short")
	registerIntFlag(&overrides.omitSpaceAroundColonMaxLength, "omit-space-around-colon-max-length", "maximum operand length still considered short")
	registerBoolFlag(&overrides.newlineAtEndOfFile, "newline-at-end-of-file", "ensure the output ends in a newline")

	getopt.BoolVarLong(&initConfig, "init-config", 0, "write the effective configuration to ./.mformat.json and exit")
	getopt.BoolVarLong(&dumpAST, "dump-ast", 0, "print the parsed syntax tree instead of formatted code")
	getopt.BoolVarLong(&help, "help", '?', "display help")
	getopt.SetParameters("PATH")

	if err := getopt.Getopt(func(getopt.Option) bool { return true }); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		stop(1)
	}

	if help {
		getopt.CommandLine.PrintUsage(os.Stderr)
		stop(0)
	}

	if initConfig {
		cfg := config.Default()
		overrides.applyTo(&cfg)
		if err := config.Save(cfg, config.FileName); err != nil {
			fmt.Fprintln(os.Stderr, err)
			stop(1)
		}
		stop(0)
	}

	args := getopt.Args()
	if len(args) != 1 {
		getopt.CommandLine.PrintUsage(os.Stderr)
		stop(1)
	}
	path := args[0]

	filePaths, err := collectSourceFiles(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop(1)
	}

	exitCode := 0
	for _, filePath := range filePaths {
		fmt.Fprintf(os.Stderr, "Processing '%s'...\n", filePath)
		if err := processFile(filePath, overrides, dumpAST); err != nil {
			fmt.Fprintln(os.Stderr, err)
			exitCode = 1
			continue
		}
	}
	stop(exitCode)
}

// collectSourceFiles returns path itself if it names a file, or every ".m"
// file under it (subdirectories visited in sorted order) if it names a
// directory, mirroring the original tool's os.walk-with-sorted-folders
// traversal.
func collectSourceFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("mformat: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	var walk func(dir string) error
	walk = func(dir string) error {
		entries, err := ioutil.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("mformat: reading directory %s: %w", dir, err)
		}

		var subdirs []string
		for _, e := range entries {
			if e.IsDir() {
				subdirs = append(subdirs, e.Name())
				continue
			}
			if strings.HasSuffix(e.Name(), ".m") {
				files = append(files, filepath.Join(dir, e.Name()))
			}
		}
		sort.Strings(subdirs)
		for _, name := range subdirs {
			if err := walk(filepath.Join(dir, name)); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(path); err != nil {
		return nil, err
	}
	return files, nil
}

// processFile resolves filePath's effective configuration (defaults, then
// its discovered .mformat.json, then the CLI overrides) and writes the
// formatted result to stdout, or (with dumpAST) pretty-prints its parsed
// tree instead.
func processFile(filePath string, overrides cliOverrides, dumpAST bool) error {
	data, err := ioutil.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("mformat: reading %s: %w", filePath, err)
	}

	cfg := config.Default()
	if found, ok := config.Search(filePath); ok {
		cfg, err = config.Load(found)
		if err != nil {
			return err
		}
	}
	overrides.applyTo(&cfg)

	tokens := lexer.Tokenize(string(data))
	tree, err := parser.Parse(tokens, toParserConfig(cfg))
	if err != nil {
		return fmt.Errorf("mformat: parsing %s: %w", filePath, err)
	}

	if dumpAST {
		fmt.Print(dumpTree(tree))
		return nil
	}

	fmt.Print(formatter.Format(tree, cfg))
	return nil
}

// toParserConfig narrows the full configuration record to the subset the
// block-depth pass consults.
func toParserConfig(cfg config.Config) parser.Config {
	return parser.Config{
		IndentCaseOtherwise:  cfg.IndentCaseOtherwise,
		IndentMainFunction:   cfg.IndentMainFunction,
		IndentLocalFunction:  cfg.IndentLocalFunction,
		IndentNestedFunction: cfg.IndentNestedFunction,
	}
}

// dumpTree renders n as a pretty-printed, indented tree for --dump-ast,
// nesting one indent.Writer per tree level the way the teacher's
// --help output nests one per format's own flag set.
func dumpTree(n *ast.SyntaxNode) string {
	var b strings.Builder
	var visit func(n *ast.SyntaxNode, w *indent.Writer)
	visit = func(n *ast.SyntaxNode, w *indent.Writer) {
		if n.Token != nil {
			fmt.Fprintf(w, "%s %s\n", n.Class, pretty.Sprint(n.Token))
		} else {
			fmt.Fprintln(w, n.Class)
		}
		child := indent.NewWriter(w, "  ")
		for _, c := range n.Children {
			visit(c, child)
		}
	}
	visit(n, indent.NewWriter(&b, ""))
	return b.String()
}
