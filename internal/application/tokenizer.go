package application

import (
	"errors"
	"strings"

	"github.com/bnema/confbot/internal/domain"
)

var ErrUnterminatedQuote = errors.New("unterminated quote in command")

// Tokenize splits one command line into at most domain.MaxArgs tokens in a
// single forward scan; the input is never mutated. Tokens are separated by a
// single space, except that a token beginning with a double quote runs
// through the next double quote. Both quote characters stay in the token;
// handlers that expect quoted text strip them. Anything after the token
// limit is ignored.
func Tokenize(input string) ([]string, error) {
	args := make([]string, 0, domain.MaxArgs)
	rest := input

	for len(args) < domain.MaxArgs {
		if strings.HasPrefix(rest, "\"") {
			closing := strings.IndexByte(rest[1:], '"')
			if closing < 0 {
				return nil, ErrUnterminatedQuote
			}

			end := closing + 2 // keep both quote characters
			args = append(args, rest[:end])
			if end == len(rest) {
				return args, nil
			}

			rest = rest[end:]
			if rest[0] == ' ' {
				rest = rest[1:]
			}
			continue
		}

		space := strings.IndexByte(rest, ' ')
		if space < 0 {
			return append(args, rest), nil
		}

		args = append(args, rest[:space])
		rest = rest[space+1:]
	}

	return args, nil
}
