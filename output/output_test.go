package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringDiffMiddleOfLongStrings(t *testing.T) {
	prefix := strings.Repeat("a", 60)
	obtained := prefix + "X" + strings.Repeat("b", 49)
	predicted := prefix + "Y" + strings.Repeat("b", 49)

	msg := StringDiff(obtained, predicted)
	require.NotEmpty(t, msg)
	assert.Contains(t, msg, "character 60")
	assert.Contains(t, msg, "...")
}

func TestStringDiffEqualIsEmpty(t *testing.T) {
	assert.Empty(t, StringDiff("same", "same"))
}

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "my_test_name", SnakeCase("MyTestName"))
	assert.Equal(t, "http_server", SnakeCase("HTTPServer"))
	assert.Equal(t, "already_snake", SnakeCase("already_snake"))
}

func TestEscapeControl(t *testing.T) {
	assert.Equal(t, `" "`, EscapeControl(" "))
	assert.Equal(t, `a\nb`, EscapeControl("a\nb"))
}

func TestRenderFallsBackToSpew(t *testing.T) {
	type widget struct{ N int }
	out := Render(widget{N: 3})
	assert.Contains(t, out, "N: (int) 3")
}

func TestRenderUsesRegisteredSerializer(t *testing.T) {
	type token struct{ V string }
	RegisterSerializer(func(tk token) string { return "token<" + tk.V + ">" })
	assert.Equal(t, "token<abc>", Render(token{V: "abc"}))
}

func TestNormalizeBlankLines(t *testing.T) {
	in := "a\n\n\n\nb\n\nc"
	assert.Equal(t, "a\n\nb\n\nc", NormalizeBlankLines(in))
}
