package docwalk

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// memberSelector decides whether a member name gets documented. With an
// explicit name set the set alone decides; otherwise the signed filter
// chain applies. Filter decisions are memoized per name for the selector's
// lifetime, since the same names recur across sibling class hierarchies.
type memberSelector struct {
	filters []memberFilter
	memo    map[string]bool
}

type memberFilter struct {
	negated bool
	pattern *regexp.Regexp
}

func newMemberSelector(patterns []string) (*memberSelector, error) {
	s := &memberSelector{memo: make(map[string]bool)}
	for _, p := range patterns {
		negated := strings.HasPrefix(p, "!")
		compiled, err := regexp.Compile(strings.TrimPrefix(p, "!"))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid filter %q", p)
		}
		s.filters = append(s.filters, memberFilter{negated: negated, pattern: compiled})
	}
	return s, nil
}

func (s *memberSelector) selectName(name string, explicit map[string]struct{}) bool {
	if len(explicit) > 0 {
		_, ok := explicit[name]
		return ok
	}
	return !s.filterNameOut(name)
}

// filterNameOut evaluates the chain: a matching pattern excludes the name,
// a matching negated ("!") pattern re-includes it, later patterns override
// earlier ones, and a name matching nothing is kept.
func (s *memberSelector) filterNameOut(name string) bool {
	if len(s.filters) == 0 {
		return false
	}
	if out, ok := s.memo[name]; ok {
		return out
	}
	keep := true
	for _, f := range s.filters {
		if f.pattern.MatchString(name) {
			keep = f.negated
		}
	}
	s.memo[name] = !keep
	return !keep
}
