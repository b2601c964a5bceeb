package assistant

import (
	"fmt"
	"strings"
)

// maxCandidates bounds how many ambiguous matches are listed back to the
// user.
const maxCandidates = 5

// resolveOne enforces the zero/one/many policy for update and delete:
// exactly one match proceeds, zero stops with "not found", and several stop
// with the candidates listed so the user can be specific. The assistant
// never guesses which record was meant.
func resolveOne[T any](matches []T, kind, term string, display func(T) string) (T, *ActionResult) {
	var zero T
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return zero, fail(fmt.Sprintf("I couldn't find a %s matching %q.", kind, term))
	default:
		names := make([]string, 0, maxCandidates)
		for i, m := range matches {
			if i == maxCandidates {
				break
			}
			names = append(names, display(m))
		}
		return zero, failWithData(
			fmt.Sprintf("I found %d %ss matching %q: %s. Which one did you mean?",
				len(matches), kind, term, strings.Join(names, ", ")),
			map[string]any{"candidates": names},
		)
	}
}
