// Package mdtest extracts language test cases from Markdown corpus
// files. A test case is a "Test: " heading followed by one input fence
// (```kaleidoscope or ```kaleidoscope-expr) and one or more assertion
// fences (```ast with the expected s-expression, ```error with the
// expected diagnostics, one per line).
package mdtest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// InputType tells the corpus runner how to parse the input fence.
type InputType string

const (
	// InputTypeExpr parses the input as a bare expression.
	InputTypeExpr InputType = "kaleidoscope-expr"
	// InputTypeUnit parses the input as one top-level unit, the way the
	// driver dispatches it (def, extern or top-level expression).
	InputTypeUnit InputType = "kaleidoscope"
)

// AssertionType tells the corpus runner what to check.
type AssertionType string

const (
	// AssertionTypeAST compares the parsed tree's s-expression.
	AssertionTypeAST AssertionType = "ast"
	// AssertionTypeError compares the reported diagnostics.
	AssertionTypeError AssertionType = "error"
)

type Assertion struct {
	Type    AssertionType
	Content string
}

// TestCase is one extracted corpus entry.
type TestCase struct {
	Name       string
	Input      string
	InputType  InputType
	Assertions []Assertion
}

// ExtractTestCases walks a Markdown document and collects every test
// case. Fences with a recognized language outside a test case, unknown
// fence languages, duplicated input fences, and cases missing an input
// or an assertion are all errors; fences with no language are prose
// and get skipped.
func ExtractTestCases(markdownContent string) ([]TestCase, error) {
	source := []byte(markdownContent)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	e := new(extractor)
	e.source = source

	err := ast.Walk(doc, e.visit)
	if err != nil {
		return nil, err
	}

	err = e.finishCase()
	if err != nil {
		return nil, err
	}
	return e.cases, nil
}

type extractor struct {
	source []byte
	cases  []TestCase
	cur    *TestCase
}

func (e *extractor) visit(node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	switch n := node.(type) {
	case *ast.Heading:
		heading := e.nodeText(n)
		if !strings.HasPrefix(heading, "Test: ") {
			return ast.WalkContinue, nil
		}
		err := e.finishCase()
		if err != nil {
			return ast.WalkStop, err
		}
		e.cur = &TestCase{Name: strings.TrimPrefix(heading, "Test: ")}
	case *ast.FencedCodeBlock:
		err := e.addFence(n)
		if err != nil {
			return ast.WalkStop, err
		}
	}

	return ast.WalkContinue, nil
}

func (e *extractor) addFence(fence *ast.FencedCodeBlock) error {
	language := string(fence.Language(e.source))
	if language == "" {
		// Plain fences are prose, not test content
		return nil
	}

	line := e.lineOf(fence)
	content := strings.TrimRight(e.fenceContent(fence), "\n")

	if e.cur == nil {
		if isInputFence(language) || isAssertionFence(language) {
			return fmt.Errorf("line %d: %s fence found outside of a test case", line, language)
		}
		return fmt.Errorf("line %d: unknown fence language '%s' found outside of a test case", line, language)
	}

	switch {
	case isInputFence(language):
		if e.cur.InputType != "" {
			return fmt.Errorf("line %d: multiple input fences in test '%s'", line, e.cur.Name)
		}
		e.cur.Input = content
		e.cur.InputType = InputType(language)
	case isAssertionFence(language):
		e.cur.Assertions = append(e.cur.Assertions, Assertion{
			Type:    AssertionType(language),
			Content: content,
		})
	default:
		return fmt.Errorf("line %d: unknown fence language '%s' in test '%s'", line, language, e.cur.Name)
	}
	return nil
}

// finishCase validates and saves the test case being built, if any.
func (e *extractor) finishCase() error {
	if e.cur == nil {
		return nil
	}
	if e.cur.InputType == "" {
		return fmt.Errorf("test '%s' has no input fence", e.cur.Name)
	}
	if len(e.cur.Assertions) == 0 {
		return fmt.Errorf("test '%s' has no assertion fences", e.cur.Name)
	}
	e.cases = append(e.cases, *e.cur)
	e.cur = nil
	return nil
}

func (e *extractor) nodeText(node ast.Node) string {
	var buf bytes.Buffer
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*ast.Text); ok {
				buf.Write(t.Segment.Value(e.source))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func (e *extractor) fenceContent(fence *ast.FencedCodeBlock) string {
	var buf bytes.Buffer
	for i := 0; i < fence.Lines().Len(); i++ {
		segment := fence.Lines().At(i)
		buf.Write(segment.Value(e.source))
	}
	return buf.String()
}

func (e *extractor) lineOf(node ast.Node) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	line := 1
	start := node.Lines().At(0).Start
	for i := 0; i < start && i < len(e.source); i++ {
		if e.source[i] == '\n' {
			line++
		}
	}
	return line
}

func isInputFence(language string) bool {
	return language == string(InputTypeExpr) || language == string(InputTypeUnit)
}

func isAssertionFence(language string) bool {
	return language == string(AssertionTypeAST) || language == string(AssertionTypeError)
}
