package utils

import "testing"

func TestGenerateEnvVarName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple alphanumeric name",
			input:    "myservice",
			expected: "MYSERVICE",
		},
		{
			name:     "name with hyphens",
			input:    "my-analytics-service",
			expected: "MY_ANALYTICS_SERVICE",
		},
		{
			name:     "name with spaces",
			input:    "my service name",
			expected: "MY_SERVICE_NAME",
		},
		{
			name:     "name with mixed characters",
			input:    "my-service_name.v2",
			expected: "MY_SERVICE_NAME_V2",
		},
		{
			name:     "name with leading/trailing special chars",
			input:    "-my_service-",
			expected: "MY_SERVICE",
		},
		{
			name:     "name already uppercase",
			input:    "MYSERVICE",
			expected: "MYSERVICE",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "only special characters",
			input:    "---",
			expected: "",
		},
		{
			name:     "name with numbers",
			input:    "service-v1.2.3",
			expected: "SERVICE_V1_2_3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GenerateEnvVarName(tt.input)
			if result != tt.expected {
				t.Errorf("GenerateEnvVarName(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGenerateAdminPasswordEnvVarName(t *testing.T) {
	tests := []struct {
		name     string
		username string
		expected string
	}{
		{
			name:     "simple username",
			username: "inbal",
			expected: "ADMIN_PASSWORD_HASH_FOR_INBAL",
		},
		{
			name:     "username with hyphens",
			username: "event-admin",
			expected: "ADMIN_PASSWORD_HASH_FOR_EVENT_ADMIN",
		},
		{
			name:     "username with dots",
			username: "admin.user.2",
			expected: "ADMIN_PASSWORD_HASH_FOR_ADMIN_USER_2",
		},
		{
			name:     "username with spaces",
			username: "the owner",
			expected: "ADMIN_PASSWORD_HASH_FOR_THE_OWNER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GenerateAdminPasswordEnvVarName(tt.username)
			if result != tt.expected {
				t.Errorf("GenerateAdminPasswordEnvVarName(%q) = %q, want %q", tt.username, result, tt.expected)
			}
		})
	}
}
