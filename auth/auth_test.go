package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignMatchesHMACSHA256Base64(t *testing.T) {
	secret := base64.StdEncoding.EncodeToString([]byte("super-secret"))
	a := New("key", secret, "pass")

	got := a.Sign("hello")

	mac := hmac.New(sha256.New, []byte("super-secret"))
	mac.Write([]byte("hello"))
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	assert.Equal(t, want, got)
}

func TestRequestHeadersContainsExpectedKeys(t *testing.T) {
	secret := base64.StdEncoding.EncodeToString([]byte("secret"))
	a := New("my-key", secret, "my-pass")

	headers := a.RequestHeaders("GET", "/orders", "")

	require.Equal(t, "my-key", headers["CB-ACCESS-KEY"])
	require.Equal(t, "my-pass", headers["CB-ACCESS-PASSPHRASE"])
	require.NotEmpty(t, headers["CB-ACCESS-SIGN"])
	require.NotEmpty(t, headers["CB-ACCESS-TIMESTAMP"])
}

func TestSubscriptionSignatureUsesUsersSelfVerify(t *testing.T) {
	secret := base64.StdEncoding.EncodeToString([]byte("secret"))
	a := New("my-key", secret, "my-pass")

	signature, timestamp := a.SubscriptionSignature()

	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write([]byte(timestamp + "GET/users/self/verify"))
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	assert.Equal(t, want, signature)
}
