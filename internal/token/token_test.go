package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "simple words",
			line: "git checkout main",
			want: []string{"git", "checkout", "main"},
		},
		{
			name: "double quotes keep whitespace",
			line: `a "b c" d`,
			want: []string{"a", `"b c"`, "d"},
		},
		{
			name: "single quotes keep whitespace",
			line: `echo 'hello world'`,
			want: []string{"echo", `'hello world'`},
		},
		{
			name: "unterminated quote does not crash",
			line: `a "b`,
			want: []string{"a", `"b`},
		},
		{
			name: "trailing space emits empty word",
			line: "ls ",
			want: []string{"ls", ""},
		},
		{
			name: "multiple spaces collapse",
			line: "ls   -la",
			want: []string{"ls", "-la"},
		},
		{
			name: "escaped space joins word",
			line: `cat my\ file.txt`,
			want: []string{"cat", "my file.txt"},
		},
		{
			name: "tabs separate words",
			line: "du\t-sh",
			want: []string{"du", "-sh"},
		},
		{
			name: "empty line",
			line: "",
			want: nil,
		},
		{
			name: "only whitespace",
			line: "   ",
			want: []string{""},
		},
		{
			name: "quote inside word",
			line: `git commit -m"wip stuff"`,
			want: []string{"git", "commit", `-m"wip stuff"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.line))
		})
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{`"b c"`, "b c"},
		{`'x y'`, "x y"},
		{`plain`, "plain"},
		{`my\ file`, "my file"},
		{`"unterminated`, "unterminated"},
		{`esc\"aped`, `esc"aped`},
		{`trailing\`, `trailing\`},
		{``, ``},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Unquote(tt.word), "unquote %q", tt.word)
	}
}

func TestClassify_Slots(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantSlot Slot
		wantWord string
		wantCmd  string
	}{
		{"argument after command", "git chec", SlotArgument, "chec", "git"},
		{"variable", "echo $HO", SlotVariable, "$HO", "echo"},
		{"bare variable", "$HO", SlotVariable, "$HO", ""},
		{"option", "ls -l", SlotOption, "-l", "ls"},
		{"path with slash", "cat src/ma", SlotPath, "src/ma", "cat"},
		{"tilde path", "cd ~/pro", SlotPath, "~/pro", "cd"},
		{"first word is command", "gi", SlotCommand, "gi", ""},
		{"empty line is command", "", SlotCommand, "", ""},
		{"new word after command", "git ", SlotArgument, "", "git"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := Classify(tt.line, len(tt.line), "/tmp")
			assert.Equal(t, tt.wantSlot, ctx.Slot)
			assert.Equal(t, tt.wantWord, ctx.CurrentWord)
			assert.Equal(t, tt.wantCmd, ctx.CommandName)
			assert.Equal(t, "/tmp", ctx.WorkDir)
		})
	}
}

func TestClassify_CursorMidLine(t *testing.T) {
	// Cursor inside "checkout": only text before the cursor counts.
	line := "git checkout main"
	ctx := Classify(line, 8, "")

	assert.Equal(t, "chec", ctx.CurrentWord)
	assert.Equal(t, []string{"git"}, ctx.PreviousWords)
	assert.Equal(t, "git", ctx.CommandName)
	assert.Equal(t, SlotArgument, ctx.Slot)
}

func TestClassify_CursorClamped(t *testing.T) {
	ctx := Classify("ls", 99, "")
	assert.Equal(t, "ls", ctx.CurrentWord)
	assert.Equal(t, SlotCommand, ctx.Slot)

	ctx = Classify("ls", -3, "")
	assert.Equal(t, "", ctx.CurrentWord)
	assert.Equal(t, SlotCommand, ctx.Slot)
}

func TestClassify_QuotedCommandName(t *testing.T) {
	ctx := Classify(`"my tool" arg`, len(`"my tool" arg`), "")
	assert.Equal(t, "my tool", ctx.CommandName)
	assert.Equal(t, SlotArgument, ctx.Slot)
}
