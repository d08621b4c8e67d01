package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedact(t *testing.T) {
	testCases := []struct {
		name string
		in   []interface{}
		out  []interface{}
	}{
		{"nothing to redact", []interface{}{"row", 3}, []interface{}{"row", 3}},
		{"email and phone", []interface{}{"Email", "a@b.c", "phone", "555", "row", 1}, []interface{}{"Email", "[REDACTED]", "phone", "[REDACTED]", "row", 1}},
		{"dangling key", []interface{}{"row", 1, "orphan"}, []interface{}{"row", 1, "orphan"}},
		{"empty", nil, nil},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.out, redact(tt.in))
		})
	}
}

func TestNew(t *testing.T) {
	for _, mode := range []string{"dev", "production"} {
		l, err := New(mode)
		assert.NoError(t, err)
		assert.NotNil(t, l.With("mode", mode))
	}
	NewNop().Info("discarded", "email", "x@y.z")
}
