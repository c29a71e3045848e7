package oracle

// findJSONCandidates scans s for top-level JSON object candidates.
// Providers occasionally wrap the structured output in prose or code
// fences despite the schema constraint; scanning for balanced braces
// recovers the object without regexes. Byte iteration is safe for the
// ASCII delimiters because UTF-8 never embeds them in multi-byte runes.
func findJSONCandidates(s string) []string {
	var candidates []string
	var depth int
	start := -1
	var inString, escape bool

	for i := 0; i < len(s); i++ {
		b := s[i]

		if escape {
			escape = false
			continue
		}
		if inString {
			if b == '\\' {
				escape = true
			} else if b == '"' {
				inString = false
			}
			continue
		}

		switch b {
		case '"':
			inString = true
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start != -1 {
					candidates = append(candidates, s[start:i+1])
					start = -1
				}
			}
		}
	}
	return candidates
}
