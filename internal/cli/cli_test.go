package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/addressbook/internal/shell"
)

// runResult holds the captured output of one in-process CLI invocation.
type runResult struct {
	Stdout string
	Stderr string
	Err    error
}

// runCLI executes the root command with args and stdin, isolated from the
// user's environment.
func runCLI(t *testing.T, stdin string, args ...string) runResult {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("ADDRESSBOOK_CONFIG_DIR", "")
	t.Setenv("ADDRESSBOOK_LOG_LEVEL", "")
	t.Setenv("ADDRESSBOOK_OUTPUT", "")
	t.Setenv("ADDRESSBOOK_PROMPT", "")

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.Execute()
	return runResult{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileExt), []byte(content), 0o644))
}

func TestVersionCommand(t *testing.T) {
	res := runCLI(t, "", "version")
	require.NoError(t, res.Err)
	assert.Equal(t, "addressbook v"+Version+"\nmodule: "+modulePath+"\n", res.Stdout)
}

func TestInitWritesDefaultConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")

	res := runCLI(t, "", "--config-dir", dir, "init")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "Configuration written to")

	data, err := os.ReadFile(filepath.Join(dir, configFileExt))
	require.NoError(t, err)
	var got shell.Config
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, shell.DefaultConfig(), got)

	res = runCLI(t, "", "--config-dir", dir, "init")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "Configuration already exists")
}

func TestInitKeepsExistingConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "output: json\n")

	res := runCLI(t, "", "--config-dir", dir, "init")
	require.NoError(t, res.Err)

	data, err := os.ReadFile(filepath.Join(dir, configFileExt))
	require.NoError(t, err)
	assert.Equal(t, "output: json\n", string(data))
}

func TestShellSession(t *testing.T) {
	script := strings.Join([]string{
		"hello",
		"add Alice 1111111111",
		"add Alice 2222222222",
		"change Alice 1111111111 3333333333",
		"phone Alice",
		"add Bob 12345",
		"delete Carol",
		"exit",
	}, "\n")

	res := runCLI(t, script, "--config-dir", t.TempDir(), "shell")
	require.NoError(t, res.Err)

	out := res.Stdout
	assert.True(t, strings.HasPrefix(out, "Welcome to the assistant bot!\n"))
	assert.Contains(t, out, "How can I help you?")
	assert.Contains(t, out, "Contact added.")
	assert.Contains(t, out, "3333333333; 2222222222")
	assert.Contains(t, out, `Validation failed: phone "12345" should consist of 10 digits.`)
	assert.Contains(t, out, "Not found: contact Carol.")
	assert.True(t, strings.HasSuffix(out, "Good bye!\n"))
}

func TestRootStartsShell(t *testing.T) {
	res := runCLI(t, "hello\nexit\n", "--config-dir", t.TempDir())
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "How can I help you?")
}

func TestShellUsesConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "prompt: '>> '\noutput: json\n")

	res := runCLI(t, "add Alice 1111111111\nall\nexit\n", "--config-dir", dir)
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, ">> Contact added.")
	assert.Contains(t, res.Stdout, `"name": "Alice"`)
}

func TestShellJSONFlag(t *testing.T) {
	res := runCLI(t, "all\nexit\n", "--config-dir", t.TempDir(), "--json")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "[]")
}

func TestShellDebugLogging(t *testing.T) {
	res := runCLI(t, "add Alice\nexit\n", "--config-dir", t.TempDir(), "--log-level", "debug")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stderr, "level=debug")
	assert.Contains(t, res.Stderr, `msg="contact added"`)
}

func TestShellInfoLoggingDropsDebug(t *testing.T) {
	res := runCLI(t, "add Alice\nexit\n", "--config-dir", t.TempDir())
	require.NoError(t, res.Err)
	assert.NotContains(t, res.Stderr, "level=debug")
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		args    []string
		wantErr error
	}{
		{
			name:    "unknown output in file",
			config:  "output: csv\n",
			wantErr: shell.ErrOutputUnknown,
		},
		{
			name:    "unknown level flag",
			args:    []string{"--log-level", "loud"},
			wantErr: shell.ErrLogLevelUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.config != "" {
				writeConfig(t, dir, tt.config)
			}
			args := append([]string{"--config-dir", dir}, tt.args...)

			res := runCLI(t, "exit\n", args...)
			assert.ErrorIs(t, res.Err, tt.wantErr)
			assert.Equal(t, exitUserError, exitCode(res.Err))
		})
	}
}

func TestEnvOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "output: table\n")
	f := &rootFlags{}

	t.Setenv("ADDRESSBOOK_OUTPUT", "json")
	cfg, err := loadConfig(dir, f)
	require.NoError(t, err)
	assert.Equal(t, shell.OutputJSON, cfg.Output)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "absent"), &rootFlags{})
	require.NoError(t, err)
	assert.Equal(t, shell.DefaultConfig(), cfg)
}

func TestUnknownSubcommand(t *testing.T) {
	res := runCLI(t, "", "frobnicate")
	assert.Error(t, res.Err)
	assert.Equal(t, exitUserError, exitCode(res.Err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitUserError, exitCode(errors.New("bad input")))
	assert.Equal(t, exitSysError, exitCode(sysError(errors.New("disk full"))))
}
