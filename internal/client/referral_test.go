package client

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestReferralCode(t *testing.T) {
	assert.Equal(t, "A1B2C3D4", ReferralCode("a1b2c3d4-0000-4000-8000-000000000000"))
	assert.Equal(t, "ABC", ReferralCode("abc"))

	id := uuid.NewString()
	code := ReferralCode(id)
	assert.Len(t, code, ReferralCodeLength)
	assert.Equal(t, id[:8], normalizeReferral(code))
}

func TestNewReferralInfo(t *testing.T) {
	c := &Client{ID: "0f9e8d7c-1111-4222-8333-444455556666"}

	info := NewReferralInfo(c, "https://swarv.example/")
	assert.Equal(t, "0F9E8D7C", info.Code)
	assert.Equal(t, "https://swarv.example/auth/signup?ref=0F9E8D7C", info.URL)
}

func TestNormalizeReferral(t *testing.T) {
	assert.Equal(t, "0f9e8d7c", normalizeReferral(" 0F9E8D7C "))
	assert.Empty(t, normalizeReferral("0F9E8D7"))
	assert.Empty(t, normalizeReferral("ZZZZZZZZ"))
	assert.Empty(t, normalizeReferral("0f9e8d7c-"))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Jordan Smith", (&Client{FullName: "Jordan Smith", FirstName: "J"}).DisplayName())
	assert.Equal(t, "Jordan Smith", (&Client{FirstName: " Jordan ", LastName: "Smith"}).DisplayName())
	assert.Equal(t, "Unknown", (&Client{}).DisplayName())
}
