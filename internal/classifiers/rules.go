package classifiers

import "strings"

// rule pairs a predicate over a lowercased user agent with the value it yields.
// Tables of rules are evaluated in order and the first match wins.
type rule[T any] struct {
	match  func(ua string) bool
	result T
}

func first[T any](rules []rule[T], ua string, fallback T) T {
	for _, r := range rules {
		if r.match(ua) {
			return r.result
		}
	}
	return fallback
}

func containsAny(keywords ...string) func(string) bool {
	return func(ua string) bool {
		for _, k := range keywords {
			if strings.Contains(ua, k) {
				return true
			}
		}
		return false
	}
}

func containsAll(keywords ...string) func(string) bool {
	return func(ua string) bool {
		for _, k := range keywords {
			if !strings.Contains(ua, k) {
				return false
			}
		}
		return true
	}
}

var isBot = containsAny("bot", "crawler", "spider")
