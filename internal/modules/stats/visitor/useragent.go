package visitor

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserAgentInfo is a user agent parsed once for policy checks.
type UserAgentInfo struct {
	Raw   string
	lower string
}

func ParseUserAgent(raw string) UserAgentInfo {
	return UserAgentInfo{Raw: raw, lower: strings.ToLower(strings.TrimSpace(raw))}
}

func (u UserAgentInfo) contains(token string) bool {
	return strings.Contains(u.lower, strings.ToLower(token))
}

func (u UserAgentInfo) containsAny(tokens []string) bool {
	for _, t := range tokens {
		if u.contains(t) {
			return true
		}
	}
	return false
}

// matchesSet treats an empty token set as satisfied.
func (u UserAgentInfo) matchesSet(tokens []string) bool {
	return len(tokens) == 0 || u.containsAny(tokens)
}

// UserAgentPolicy decides which user agents count as human traffic. All
// tokens are matched as case-insensitive substrings.
type UserAgentPolicy struct {
	Denylist      []string
	LegacySystems []string
	OSTokens      []string
	BrowserTokens []string
}

// DefaultUserAgentPolicy drops crawlers, Windows 7/XP and agents that do not
// name both an operating system and a browser.
func DefaultUserAgentPolicy() UserAgentPolicy {
	return UserAgentPolicy{
		Denylist: []string{
			"bot", "crawler", "spider", "lighthouse", "headless", "monitor", "scraper",
			"phantom", "slurp", "baidu", "googlebot", "bingbot", "yandex",
		},
		LegacySystems: []string{"Windows NT 6.1", "Windows NT 5."},
		OSTokens:      []string{"Windows", "Macintosh", "Linux", "Android", "iOS", "iPhone", "iPad"},
		BrowserTokens: []string{"Chrome", "Firefox", "Safari", "Edge", "MSIE", "Opera", "Trident"},
	}
}

// Allows reports whether ua passes the policy.
func (p UserAgentPolicy) Allows(ua UserAgentInfo) bool {
	if ua.lower == "" {
		return false
	}
	if ua.containsAny(p.Denylist) || ua.containsAny(p.LegacySystems) {
		return false
	}
	return ua.matchesSet(p.OSTokens) && ua.matchesSet(p.BrowserTokens)
}

// Clauses compiles the policy into userAgent conditions for an $and list.
// A document matches all clauses exactly when Allows accepts its agent.
func (p UserAgentPolicy) Clauses() bson.A {
	clauses := bson.A{
		bson.M{"userAgent": bson.M{"$exists": true, "$nin": bson.A{nil, ""}}},
	}
	for _, token := range append(append([]string{}, p.Denylist...), p.LegacySystems...) {
		clauses = append(clauses, bson.M{"userAgent": bson.M{"$not": primitive.Regex{Pattern: regexp.QuoteMeta(token), Options: "i"}}})
	}
	for _, set := range [][]string{p.OSTokens, p.BrowserTokens} {
		if len(set) == 0 {
			continue
		}
		clauses = append(clauses, bson.M{"userAgent": containsRegex(alternation(set))})
	}
	return clauses
}

func alternation(tokens []string) string {
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return "(" + strings.Join(quoted, "|") + ")"
}

// containsRegex is a case-insensitive $regex condition for an already
// escaped pattern.
func containsRegex(pattern string) bson.M {
	return bson.M{"$regex": pattern, "$options": "i"}
}

// containsText matches fields containing the literal text.
func containsText(text string) bson.M {
	return containsRegex(regexp.QuoteMeta(text))
}
