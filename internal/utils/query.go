package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseQueryList handles both repeated and comma-separated query params.
// Example:
//
//	?ids=12,34       → ["12","34"]
//	?ids=12&ids=34   → ["12","34"]
func ParseQueryList(q map[string][]string, key string) []string {
	var out []string
	for _, v := range q[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// ParseIDList parses a list param of entity ids.
func ParseIDList(q map[string][]string, key string) ([]int64, error) {
	raw := ParseQueryList(q, key)
	if len(raw) == 0 {
		return nil, nil
	}
	ids := make([]int64, 0, len(raw))
	for _, s := range raw {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q", key, s)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
