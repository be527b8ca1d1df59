package client

import (
	"strings"
)

// ReferralCodeLength is the number of leading id characters in a referral code.
const ReferralCodeLength = 8

// ReferralCode returns the shareable code of a client: the first eight
// characters of its id, upper-cased.
func ReferralCode(id string) string {
	if len(id) > ReferralCodeLength {
		id = id[:ReferralCodeLength]
	}
	return strings.ToUpper(id)
}

// ReferralInfo is what a client sees on the refer-a-friend page.
type ReferralInfo struct {
	Code string
	URL  string
}

// NewReferralInfo builds the code and signup link for c under baseURL.
func NewReferralInfo(c *Client, baseURL string) ReferralInfo {
	code := ReferralCode(c.ID)
	return ReferralInfo{
		Code: code,
		URL:  strings.TrimRight(baseURL, "/") + "/auth/signup?ref=" + code,
	}
}

// normalizeReferral returns the lower-case id prefix for a code, or "" when
// the code cannot be one.
func normalizeReferral(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if len(code) != ReferralCodeLength {
		return ""
	}
	for _, r := range code {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return ""
		}
	}
	return code
}

func joinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
