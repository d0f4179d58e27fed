package cli

import (
	"fmt"
	"strings"

	"checklist-cli/internal/mutate"
)

func errNotFound(kind, id string) error {
	return mutate.NotFoundError{Kind: kind, ID: id}
}

type ambiguousRefError struct {
	ref     string
	matches []string
}

func (e ambiguousRefError) Error() string {
	return fmt.Sprintf("ambiguous item reference %q: matches %s", e.ref, strings.Join(e.matches, ", "))
}
