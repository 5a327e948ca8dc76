package ratelimit

import "strings"

var exempt = map[string]bool{
	"GET /health": true,
}

// Exempt reports whether a route is never limited.
func Exempt(method, path string) bool {
	return exempt[method+" "+path]
}

// MatchTier returns the first tier whose method and pattern match, or nil.
func MatchTier(method, path string, tiers []Tier) *Tier {
	segments := split(path)
	for i := range tiers {
		t := &tiers[i]
		if t.Method == method && matchSegments(split(t.Pattern), segments) {
			return t
		}
	}
	return nil
}

func split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func matchSegments(pattern, path []string) bool {
	for i, p := range pattern {
		if p == "**" && i == len(pattern)-1 {
			return len(path) > i
		}
		if i >= len(path) {
			return false
		}
		if p != "*" && p != path[i] {
			return false
		}
	}
	return len(pattern) == len(path)
}
