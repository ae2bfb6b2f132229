package domain

import "testing"

func TestClearance(t *testing.T) {
	tests := []struct {
		name    string
		account AccountType
		want    int
	}{
		{"buyer", AccountBuyer, 3},
		{"seller", AccountSeller, 3},
		{"admin", AccountAdmin, 3},
		{"unknown", AccountType("Visitor"), -1},
		{"empty", AccountType(""), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.account.Clearance(); got != tt.want {
				t.Errorf("Clearance() = %d, want %d", got, tt.want)
			}
		})
	}
}
