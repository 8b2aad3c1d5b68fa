// Package featureflags evaluates rollout flags parsed from a comma-separated
// "name=value" list, e.g. "live_updates=on,new_search=25%".
package featureflags

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

type rule struct {
	on      bool
	rollout bool
	percent int
}

// Set holds parsed flag rules. A nil Set reports every flag as disabled.
type Set struct {
	rules map[string]rule
}

// Parse builds a Set from a comma-separated config string. Malformed entries
// are skipped rather than rejected so a bad flag cannot take the server down.
func Parse(raw string) *Set {
	rules := make(map[string]rule)

	for _, entry := range strings.Split(raw, ",") {
		name, value, found := strings.Cut(strings.TrimSpace(entry), "=")
		if !found {
			continue
		}
		name = normalize(name)
		value = normalize(value)
		if name == "" || value == "" {
			continue
		}

		switch value {
		case "on", "true", "1":
			rules[name] = rule{on: true}
		case "off", "false", "0":
			rules[name] = rule{}
		default:
			pct, err := strconv.Atoi(strings.TrimSuffix(value, "%"))
			if err != nil || !strings.HasSuffix(value, "%") {
				continue
			}
			rules[name] = rule{rollout: true, percent: pct}
		}
	}

	return &Set{rules: rules}
}

// Enabled reports whether a flag is on for the given user. Unknown flags are
// off. Percentage rollouts are deterministic per (flag, user) pair so a user
// never flips between buckets across requests.
func (s *Set) Enabled(name string, userID uint) bool {
	if s == nil {
		return false
	}

	r, ok := s.rules[normalize(name)]
	if !ok {
		return false
	}
	if !r.rollout {
		return r.on
	}

	if r.percent <= 0 || userID == 0 {
		return false
	}
	if r.percent >= 100 {
		return true
	}
	return bucket(name, userID) < r.percent
}

// bucket maps a (flag, user) pair onto 0..99.
func bucket(name string, userID uint) int {
	h := fnv.New32a()
	_, _ = fmt.Fprintf(h, "%s:%d", normalize(name), userID)
	return int(h.Sum32() % 100)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
