package textdiff

import "unicode/utf8"

// tokenizeWords splits a string into word, whitespace and punctuation tokens
// using a hand-written scanner. When keepSpace is false, whitespace runs are
// attached to the preceding token so that whitespace-only edits travel with
// their word; when true they stay standalone tokens.
func tokenizeWords(s string, keepSpace bool) []string {
	if len(s) == 0 {
		return nil
	}

	tokens := make([]string, 0, len(s)/3+1)
	i := 0

	for i < len(s) {
		start := i
		c := s[i]

		switch {
		case isWordChar(c):
			i++
			for i < len(s) && isWordChar(s[i]) {
				i++
			}
			tokens = append(tokens, s[start:i])

		case isWhitespace(c):
			i++
			for i < len(s) && isWhitespace(s[i]) {
				i++
			}
			if !keepSpace && len(tokens) > 0 {
				tokens[len(tokens)-1] += s[start:i]
				continue
			}
			tokens = append(tokens, s[start:i])

		default:
			// Single character (covers punctuation and UTF-8 runes).
			_, size := utf8.DecodeRuneInString(s[i:])
			i += size
			tokens = append(tokens, s[start:i])
		}
	}

	return tokens
}

// tokenizeSentences splits a string into sentences. A sentence ends after a
// run of terminal punctuation followed by whitespace; the whitespace belongs
// to the sentence it terminates.
func tokenizeSentences(s string) []string {
	if len(s) == 0 {
		return nil
	}

	var tokens []string
	start := 0
	i := 0

	for i < len(s) {
		if !isSentenceEnd(s[i]) {
			i++
			continue
		}
		for i < len(s) && isSentenceEnd(s[i]) {
			i++
		}
		if i < len(s) && !isWhitespace(s[i]) {
			continue
		}
		for i < len(s) && isWhitespace(s[i]) {
			i++
		}
		tokens = append(tokens, s[start:i])
		start = i
	}
	if start < len(s) {
		tokens = append(tokens, s[start:])
	}

	return tokens
}

func isWordChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isSentenceEnd(c byte) bool {
	return c == '.' || c == '!' || c == '?'
}
