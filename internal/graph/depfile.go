package graph

// parseDepfile extracts the dependency tokens from a Make-style rule:
//
//	<target> ':' <whitespace-separated file list, possibly line-continued>
//
// Lexical rules, per spec §4.B:
//   - A backslash immediately before a newline (optional CR first)
//     continues the logical line; the newline is erased.
//   - A backslash before any other character quotes it literally (the
//     usual way to escape a space inside a path).
//   - Tokens are separated by unescaped ASCII whitespace.
//   - Everything through the first unescaped ':' is the target and is
//     discarded.
func parseDepfile(data []byte) []string {
	var tokens []string
	var cur []byte
	inTarget := true
	haveCur := false

	flush := func() {
		if haveCur {
			tokens = append(tokens, string(cur))
			cur = cur[:0]
			haveCur = false
		}
	}

	for i := 0; i < len(data); i++ {
		c := data[i]

		if c == '\\' && i+1 < len(data) {
			next := data[i+1]
			if next == '\n' {
				i++
				continue
			}
			if next == '\r' && i+2 < len(data) && data[i+2] == '\n' {
				i += 2
				continue
			}
			if inTarget {
				// An escaped character inside the target is discarded
				// with the rest of it.
				i++
				continue
			}
			// Escaped literal character, kept as-is (including the
			// escaped char itself, without the backslash).
			cur = append(cur, next)
			haveCur = true
			i++
			continue
		}

		if inTarget {
			if c == ':' {
				inTarget = false
			}
			continue
		}

		switch c {
		case ' ', '\t', '\n', '\r':
			flush()
		default:
			cur = append(cur, c)
			haveCur = true
		}
	}
	flush()

	return tokens
}
