package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignAndVerify(t *testing.T) {
	sig := SignPayload("order_123", "pay_456", "secret")
	assert.NoError(t, VerifySignature("order_123", "pay_456", sig, "secret"))
}

func TestVerifySingleCharMutation(t *testing.T) {
	sig := SignPayload("order_123", "pay_456", "secret")

	for i := 0; i < len(sig); i++ {
		mutated := []byte(sig)
		if mutated[i] == 'a' {
			mutated[i] = 'b'
		} else {
			mutated[i] = 'a'
		}
		if string(mutated) == sig {
			continue
		}
		assert.ErrorIs(t, VerifySignature("order_123", "pay_456", string(mutated), "secret"),
			ErrSignatureMismatch, "mutation at index %d must not verify", i)
	}
}

func TestVerifyRejectsWrongPayload(t *testing.T) {
	sig := SignPayload("order_123", "pay_456", "secret")

	assert.ErrorIs(t, VerifySignature("order_124", "pay_456", sig, "secret"), ErrSignatureMismatch)
	assert.ErrorIs(t, VerifySignature("order_123", "pay_457", sig, "secret"), ErrSignatureMismatch)
	assert.ErrorIs(t, VerifySignature("order_123", "pay_456", sig, "other"), ErrSignatureMismatch)
}

func TestVerifyRejectsMalformedSignature(t *testing.T) {
	tests := []struct {
		name string
		sig  string
	}{
		{name: "empty", sig: ""},
		{name: "whitespace", sig: "   "},
		{name: "not hex", sig: "zzzz"},
		{name: "truncated", sig: SignPayload("order_123", "pay_456", "secret")[:10]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, VerifySignature("order_123", "pay_456", tt.sig, "secret"), ErrSignatureMismatch)
		})
	}
}

func TestVerifyRejectsEmptySecret(t *testing.T) {
	sig := SignPayload("order_123", "pay_456", "")
	assert.ErrorIs(t, VerifySignature("order_123", "pay_456", sig, ""), ErrSignatureMismatch)
}

func TestVerifyAcceptsUppercaseHex(t *testing.T) {
	sig := SignPayload("order_123", "pay_456", "secret")
	upper := make([]byte, len(sig))
	for i := 0; i < len(sig); i++ {
		c := sig[i]
		if c >= 'a' && c <= 'f' {
			c = c - 'a' + 'A'
		}
		upper[i] = c
	}
	assert.NoError(t, VerifySignature("order_123", "pay_456", string(upper), "secret"))
}
