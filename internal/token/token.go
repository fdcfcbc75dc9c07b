// Package token splits raw command lines into words and classifies the
// word under the cursor into a completion slot. It implements just
// enough shell tokenization to know what is being completed; it is not
// a shell interpreter.
package token

import "strings"

// Slot is the classified role of the word under the cursor.
type Slot string

// Completion slots, evaluated in order by Classify.
const (
	SlotVariable Slot = "variable"
	SlotOption   Slot = "option"
	SlotPath     Slot = "path"
	SlotCommand  Slot = "command"
	SlotArgument Slot = "argument"
)

// Context describes the completion request derived from a raw line and
// cursor offset. It is built once per request and never mutated.
type Context struct {
	Line          string
	Cursor        int
	CurrentWord   string
	PreviousWords []string
	CommandName   string
	Slot          Slot
	WorkDir       string
}

// Tokenize splits text into words, respecting single quotes, double
// quotes and backslash escapes. Quote characters are retained in the
// emitted words; Unquote strips them. A line ending in unescaped
// whitespace yields one trailing empty word, meaning "ready to start a
// new word". Unterminated quotes are tolerated: the open word is
// emitted as-is.
func Tokenize(text string) []string {
	var words []string
	var current strings.Builder

	inWord := false
	escaped := false
	var quote byte // 0, '\'' or '"'

	for i := 0; i < len(text); i++ {
		c := text[i]

		if escaped {
			current.WriteByte(c)
			escaped = false
			continue
		}

		if quote != 0 {
			current.WriteByte(c)
			if c == quote {
				quote = 0
			}
			continue
		}

		switch {
		case c == '\\':
			// Escape consumes exactly the next character.
			escaped = true
			inWord = true
		case c == '\'' || c == '"':
			quote = c
			current.WriteByte(c)
			inWord = true
		case c == ' ' || c == '\t':
			if inWord {
				words = append(words, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteByte(c)
			inWord = true
		}
	}

	if inWord {
		words = append(words, current.String())
	} else if len(text) > 0 {
		// Trailing whitespace starts a fresh, empty word.
		words = append(words, "")
	}

	return words
}

// Unquote strips surrounding quote characters and resolves backslash
// escapes from a tokenized word. Kept separate from Tokenize so raw
// text round-trips.
func Unquote(word string) string {
	var out strings.Builder
	escaped := false
	var quote byte

	for i := 0; i < len(word); i++ {
		c := word[i]

		if escaped {
			out.WriteByte(c)
			escaped = false
			continue
		}

		if quote != 0 {
			if c == quote {
				quote = 0
			} else {
				out.WriteByte(c)
			}
			continue
		}

		switch c {
		case '\\':
			escaped = true
		case '\'', '"':
			quote = c
		default:
			out.WriteByte(c)
		}
	}

	// A dangling escape at end of input is kept literally.
	if escaped {
		out.WriteByte('\\')
	}

	return out.String()
}

// Classify derives the completion context for line with the cursor at
// offset cursor. Only the text up to the cursor participates; workDir
// is carried through for path resolution and cache keying.
func Classify(line string, cursor int, workDir string) Context {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(line) {
		cursor = len(line)
	}

	words := Tokenize(line[:cursor])

	ctx := Context{
		Line:    line,
		Cursor:  cursor,
		WorkDir: workDir,
	}

	if len(words) > 0 {
		ctx.CurrentWord = words[len(words)-1]
		ctx.PreviousWords = words[:len(words)-1]
	}
	if len(ctx.PreviousWords) > 0 {
		ctx.CommandName = Unquote(ctx.PreviousWords[0])
	}

	ctx.Slot = classifySlot(ctx.CurrentWord, ctx.PreviousWords)
	return ctx
}

// classifySlot applies the slot rules in order: variable, option, path,
// command, argument.
func classifySlot(currentWord string, previousWords []string) Slot {
	switch {
	case strings.HasPrefix(currentWord, "$"):
		return SlotVariable
	case strings.HasPrefix(currentWord, "-"):
		return SlotOption
	case strings.Contains(currentWord, "/") || strings.HasPrefix(currentWord, "~"):
		return SlotPath
	case len(previousWords) == 0:
		return SlotCommand
	default:
		return SlotArgument
	}
}
