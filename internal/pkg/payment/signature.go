package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

var (
	ErrSignatureMismatch    = errors.New("invalid payment signature")
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

// SignPayload computes the gateway signature over "orderID|paymentID" with
// the shared key secret. Exposed for tests and for building fixtures.
func SignPayload(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature recomputes the expected signature and compares in constant
// time. A payload differing by a single character fails with
// ErrSignatureMismatch.
func VerifySignature(orderID, paymentID, signature, secret string) error {
	sig := strings.TrimSpace(signature)
	if sig == "" || secret == "" {
		return ErrSignatureMismatch
	}

	decoded, err := hex.DecodeString(strings.ToLower(sig))
	if err != nil {
		return ErrSignatureMismatch
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	if !hmac.Equal(mac.Sum(nil), decoded) {
		return ErrSignatureMismatch
	}
	return nil
}
