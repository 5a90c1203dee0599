package server_test

import (
	"testing"

	"stock-manager/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_IsValidLedger(t *testing.T) {
	tests := []struct {
		name   string
		ledger string
		want   bool
	}{
		{"Default", "default", true},
		{"WithDash", "store-01", true},
		{"WithUnderscore", "home_pantry", true},
		{"Uppercase", "Pantry", false},
		{"Colon", "a:b", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{Ledger: tt.ledger}
			assert.Equal(t, tt.want, c.IsValidLedger())
		})
	}
}
