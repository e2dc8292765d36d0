package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"QB_CLIENT_ID", "QB_CLIENT_SECRET", "QB_REDIRECT_URI", "QB_ENVIRONMENT"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestParseEnvironment(t *testing.T) {
	tests := []struct {
		in      string
		want    Environment
		wantErr bool
	}{
		{in: "", want: Sandbox},
		{in: "sandbox", want: Sandbox},
		{in: "production", want: Production},
		{in: " Production ", want: Production},
		{in: "staging", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseEnvironment(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestEnvironmentURLs(t *testing.T) {
	assert.Contains(t, Sandbox.DiscoveryURL(), "openid_sandbox_configuration")
	assert.Contains(t, Production.DiscoveryURL(), "openid_configuration")
	assert.Equal(t, "https://sandbox-quickbooks.api.intuit.com", Sandbox.APIBaseURL())
	assert.Equal(t, "https://quickbooks.api.intuit.com", Production.APIBaseURL())
}

func TestLoadFromProcessEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("QB_CLIENT_ID", "id-from-env")
	t.Setenv("QB_CLIENT_SECRET", "secret-from-env")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)

	assert.Equal(t, "id-from-env", cfg.ClientID)
	assert.Equal(t, "secret-from-env", cfg.ClientSecret)
	assert.Equal(t, DefaultRedirectURI, cfg.RedirectURI)
	assert.Equal(t, Sandbox, cfg.Environment)
}

func TestLoadFromDotenvFile(t *testing.T) {
	clearEnv(t)
	path := writeEnvFile(t, `
# Intuit app credentials
QB_CLIENT_ID=id-from-file
QB_CLIENT_SECRET = secret-from-file
QB_ENVIRONMENT=production

not a key value line
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "id-from-file", cfg.ClientID)
	assert.Equal(t, "secret-from-file", cfg.ClientSecret)
	assert.Equal(t, Production, cfg.Environment)
}

func TestLoadProcessEnvWinsOverFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("QB_CLIENT_ID", "id-from-env")
	path := writeEnvFile(t, "QB_CLIENT_ID=id-from-file\nQB_CLIENT_SECRET=secret-from-file\n")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "id-from-env", cfg.ClientID)
	assert.Equal(t, "secret-from-file", cfg.ClientSecret)
}

func TestLoadMissingCredentials(t *testing.T) {
	clearEnv(t)

	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QB_CLIENT_ID")
}

func TestLoadInvalidEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("QB_CLIENT_ID", "id")
	t.Setenv("QB_CLIENT_SECRET", "secret")
	t.Setenv("QB_ENVIRONMENT", "staging")

	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)
}
