package device

import "testing"

func TestValidIPAddress(t *testing.T) {
	tests := []struct {
		addr     string
		expected bool
	}{
		{"192.168.1.10", true},
		{"10.0.0.1", true},
		{"255.255.255.255", true},
		{"192.168.1", false},
		{"192.168.1.256", false},
		{"192.168.1.10.5", false},
		{"::1", false},
		{"fe80::1", false},
		{"router.lan", false},
		{"", false},
		{"192.168.1.10 ", false},
	}

	for _, test := range tests {
		result := ValidIPAddress(test.addr)
		if result != test.expected {
			t.Errorf("ValidIPAddress(%q) = %v, expected %v", test.addr, result, test.expected)
		}
	}
}
