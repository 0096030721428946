package main

import "testing"

func TestExitCodes_Values(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected int
	}{
		{"ExitSuccess", ExitSuccess, 0},
		{"ExitGeneralError", ExitGeneralError, 1},
		{"ExitServerNotRunning", ExitServerNotRunning, 2},
		{"ExitTaskNotFound", ExitTaskNotFound, 4},
		{"ExitValidation", ExitValidation, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.expected {
				t.Errorf("%s = %d, expected %d", tt.name, tt.code, tt.expected)
			}
		})
	}
}
