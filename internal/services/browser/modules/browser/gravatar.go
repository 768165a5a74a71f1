package browser

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strings"
)

const gravatarBaseURL = "http://www.gravatar.com/avatar/"

// gravatarURL returns the avatar URL for email: 100px, rated g, retro
// fallback.
func gravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	query := url.Values{
		"s": {"100"},
		"r": {"g"},
		"d": {"retro"},
	}
	return gravatarBaseURL + hex.EncodeToString(sum[:]) + "?" + query.Encode()
}
