package mdtest

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func TestExtractTestCases(t *testing.T) {
	markdown := `# Binary expressions

## Test: addition
` + "```kaleidoscope-expr" + `
1 + 2
` + "```" + `
` + "```ast" + `
(binary "+" (number 1) (number 2))
` + "```" + `

## Test: definition
` + "```kaleidoscope" + `
def id(x) x
` + "```" + `
` + "```ast" + `
(function (proto "id" ("x")) (variable "x"))
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 2)

	tc1 := testCases[0]
	be.Equal(t, tc1.Name, "addition")
	be.Equal(t, tc1.Input, "1 + 2")
	be.Equal(t, tc1.InputType, InputTypeExpr)
	be.Equal(t, len(tc1.Assertions), 1)
	be.Equal(t, tc1.Assertions[0].Type, AssertionTypeAST)
	be.Equal(t, tc1.Assertions[0].Content, `(binary "+" (number 1) (number 2))`)

	tc2 := testCases[1]
	be.Equal(t, tc2.Name, "definition")
	be.Equal(t, tc2.Input, "def id(x) x")
	be.Equal(t, tc2.InputType, InputTypeUnit)
}

func TestExtractTestCases_ErrorAssertion(t *testing.T) {
	markdown := `## Test: missing operand
` + "```kaleidoscope" + `
1 +
` + "```" + `
` + "```error" + `
test.ks:1:4: expected an expression, not 'end of input'
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 1)
	be.Equal(t, testCases[0].Assertions[0].Type, AssertionTypeError)
	be.Equal(t, testCases[0].Assertions[0].Content, "test.ks:1:4: expected an expression, not 'end of input'")
}

func TestExtractTestCases_MultilineInput(t *testing.T) {
	markdown := `## Test: definition with comment
` + "```kaleidoscope" + `
# squared distance
def dist2(a b) a*a + b*b
` + "```" + `
` + "```ast" + `
(function (proto "dist2" ("a" "b")) (binary "+" (binary "*" (variable "a") (variable "a")) (binary "*" (variable "b") (variable "b"))))
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 1)
	be.Equal(t, testCases[0].Input, "# squared distance\ndef dist2(a b) a*a + b*b")
}

func TestExtractTestCases_EmptyDocument(t *testing.T) {
	testCases, err := ExtractTestCases("")
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 0)
}

func TestExtractTestCases_ProseOnly(t *testing.T) {
	markdown := `# Some document

Regular prose, no test cases.

` + "```" + `
a fence with no language is prose too
` + "```"

	testCases, err := ExtractTestCases(markdown)
	be.Err(t, err, nil)
	be.Equal(t, len(testCases), 0)
}

func TestExtractTestCases_MissingInputFence(t *testing.T) {
	markdown := `## Test: no input
` + "```ast" + `
(number 1)
` + "```"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "test 'no input' has no input fence"))
}

func TestExtractTestCases_MissingAssertionFence(t *testing.T) {
	markdown := `## Test: no assertions
` + "```kaleidoscope" + `
1 + 2
` + "```"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "test 'no assertions' has no assertion fences"))
}

func TestExtractTestCases_FenceOutsideTestCase(t *testing.T) {
	markdown := `# Document

` + "```kaleidoscope" + `
1 + 2
` + "```"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "kaleidoscope fence found outside of a test case"))
	be.True(t, strings.Contains(err.Error(), "line"))
}

func TestExtractTestCases_UnknownFenceLanguage(t *testing.T) {
	markdown := `## Test: with unknown fence
` + "```kaleidoscope" + `
1 + 2
` + "```" + `
` + "```python" + `
print("hello")
` + "```"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "unknown fence language 'python' in test 'with unknown fence'"))
}

func TestExtractTestCases_MultipleInputFences(t *testing.T) {
	markdown := `## Test: twice
` + "```kaleidoscope" + `
1 + 2
` + "```" + `
` + "```kaleidoscope-expr" + `
3 + 4
` + "```" + `
` + "```ast" + `
(binary "+" (number 1) (number 2))
` + "```"

	_, err := ExtractTestCases(markdown)
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "multiple input fences in test 'twice'"))
}
