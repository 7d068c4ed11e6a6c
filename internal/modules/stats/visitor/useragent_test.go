package visitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestUserAgentPolicy_Allows(t *testing.T) {
	policy := DefaultUserAgentPolicy()

	tests := []struct {
		name string
		ua   string
		want bool
	}{
		{"desktop chrome", desktopChrome, true},
		{"iphone safari", iphoneSafari, true},
		{"linux firefox", "Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0", true},
		{"bot signature", "bot-crawler/1.0", false},
		{"googlebot with browser tokens", "Mozilla/5.0 (Linux; Android 6.0.1) Chrome/120 Safari/537.36 (compatible; Googlebot/2.1)", false},
		{"headless chrome", "Mozilla/5.0 (X11; Linux x86_64) HeadlessChrome/120.0 Safari/537.36", false},
		{"windows 7", "Mozilla/5.0 (Windows NT 6.1; Win64; x64) Chrome/109.0 Safari/537.36", false},
		{"windows xp", "Mozilla/4.0 (compatible; MSIE 8.0; Windows NT 5.1; Trident/4.0)", false},
		{"no os", "Chrome/124.0", false},
		{"no browser", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)", false},
		{"curl", "curl/8.4.0", false},
		{"empty", "", false},
		{"blank", "   ", false},
		{"case insensitive deny", "Mozilla/5.0 (Macintosh) Safari/605 YANDEX", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Allows(ParseUserAgent(tt.ua)))
		})
	}
}

// The compiled clauses must accept exactly what Allows accepts.
func TestUserAgentPolicy_ClausesAgreeWithAllows(t *testing.T) {
	policy := DefaultUserAgentPolicy()
	filter := bson.M{"$and": policy.Clauses()}

	agents := []string{
		desktopChrome, iphoneSafari, "bot-crawler/1.0", "",
		"Mozilla/5.0 (Windows NT 6.1) Chrome/109",
		"Mozilla/5.0 (Windows NT 5.2) Firefox/3",
		"Mozilla/5.0 (iPad; CPU OS 16_0) Version/16.0 Mobile Safari/604.1",
		"Opera/9.80 (Android; Opera Mini/36.2) Presto/2.12",
		"Lighthouse Chrome Linux", "Spider Linux Firefox", "Windows Edge",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)",
	}
	for _, ua := range agents {
		e := entry(0, ua)
		assert.Equal(t, policy.Allows(ParseUserAgent(ua)), matchFilter(e, filter), ua)
	}
}

func TestUserAgentPolicy_EscapesTokens(t *testing.T) {
	policy := UserAgentPolicy{Denylist: []string{"a.b"}}
	filter := bson.M{"$and": policy.Clauses()}

	assert.True(t, matchFilter(entry(0, "axb"), filter))
	assert.False(t, matchFilter(entry(0, "A.B"), filter))
	assert.True(t, policy.Allows(ParseUserAgent("axb")))
}
