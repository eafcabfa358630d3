package model

import (
	"fmt"
	"strings"
)

type Filter string

const (
	FilterAll        Filter = "all"
	FilterIncomplete Filter = Filter(INCOMPLETE)
	FilterComplete   Filter = Filter(COMPLETE)
)

// Filters lists the filters in the order the views cycle through them.
var Filters = []Filter{FilterAll, FilterIncomplete, FilterComplete}

func ParseFilter(s string) (Filter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FilterAll, nil
	}
	for _, f := range Filters {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown filter '%s' (want all, incomplete or complete)", s)
}

// Matches reports whether the task is part of the filtered view.
func (f Filter) Matches(t Task) bool {
	if f == FilterAll || f == "" {
		return true
	}
	return string(t.Status) == string(f)
}

// Next returns the filter following f in Filters.
func (f Filter) Next() Filter {
	for i, cur := range Filters {
		if cur == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}
