package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/athmas-shadow/llvm-kaleideoscope/internal/ast"
	"github.com/athmas-shadow/llvm-kaleideoscope/internal/mdtest"
	"github.com/nalgeon/be"
)

// TestCorpus runs every Markdown corpus file under testdata/. Each
// extracted case parses its input fence and checks the assertion
// fences: 'ast' against the tree's s-expression, 'error' against the
// collected diagnostics.
func TestCorpus(t *testing.T) {
	testFiles, err := filepath.Glob("testdata/*.md")
	be.Err(t, err, nil)
	be.True(t, len(testFiles) > 0)

	for _, testFile := range testFiles {
		testName := strings.TrimSuffix(filepath.Base(testFile), ".md")

		t.Run(testName, func(t *testing.T) {
			content, err := os.ReadFile(testFile)
			be.Err(t, err, nil)

			testCases, err := mdtest.ExtractTestCases(string(content))
			be.Err(t, err, nil)

			for _, tc := range testCases {
				t.Run(tc.Name, func(t *testing.T) {
					runCorpusCase(t, tc)
				})
			}
		})
	}
}

func runCorpusCase(t *testing.T, tc mdtest.TestCase) {
	p := NewFromString(tc.Input, defaultFilename)

	var node *ast.Node
	var err error
	switch tc.InputType {
	case mdtest.InputTypeExpr:
		node, err = p.ParseExpression()
	case mdtest.InputTypeUnit:
		node, err = p.ParseUnit()
	default:
		t.Fatalf("unknown input type: %s", tc.InputType)
	}

	for _, assertion := range tc.Assertions {
		switch assertion.Type {
		case mdtest.AssertionTypeAST:
			be.Err(t, err, nil)
			be.Equal(t, node.Sexpr(), assertion.Content)
		case mdtest.AssertionTypeError:
			be.True(t, err != nil)

			var messages []string
			for _, diag := range p.Collector().Diags {
				messages = append(messages, diag.Message)
			}
			be.Equal(t, strings.Join(messages, "\n"), assertion.Content)
		}
	}
}
