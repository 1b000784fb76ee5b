package shell

// isSeparator reports whether b splits tokens. Only spaces and tabs do; there
// is no quoting or escaping.
func isSeparator(b byte) bool {
	return b == ' ' || b == '\t'
}

// Tokenize splits line into tokens separated by runs of spaces and tabs.
//
// Tokens are substrings of line, line itself is never modified. A line with
// no tokens returns an empty slice and no error. If the line holds more than
// maxArgs tokens ErrTooManyArguments is returned with no tokens.
func Tokenize(line string, maxArgs int) ([]string, error) {
	tokens := []string{}
	start := -1

	for i := 0; i < len(line); i++ {
		switch {
		case isSeparator(line[i]):
			if start >= 0 {
				tokens = append(tokens, line[start:i])
				start = -1
			}
		case start < 0:
			if len(tokens) >= maxArgs {
				return nil, ErrTooManyArguments
			}
			start = i
		}
	}

	if start >= 0 {
		tokens = append(tokens, line[start:])
	}

	return tokens, nil
}
