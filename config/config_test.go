package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nihei9/slrkit/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		config  *Config
		err     bool
	}{
		{
			caption: "an empty document yields the defaults",
			src:     ``,
			config: &Config{
				Output: ".",
				Trace:  "Error",
				Dedup:  "ordered",
			},
		},
		{
			caption: "all keys",
			src: `
output = "out"
trace = "Debug"
dedup = "set"
`,
			config: &Config{
				Output: "out",
				Trace:  "Debug",
				Dedup:  "set",
			},
		},
		{
			caption: "an empty value keeps the default",
			src: `
output = ""
dedup = "set"
`,
			config: &Config{
				Output: ".",
				Trace:  "Error",
				Dedup:  "set",
			},
		},
		{
			caption: "an unknown key is an error",
			src:     `outptu = "out"`,
			err:     true,
		},
		{
			caption: "an invalid dedup mode is an error",
			src:     `dedup = "sorted"`,
			err:     true,
		},
		{
			caption: "an invalid trace level is an error",
			src:     `trace = "Verbose"`,
			err:     true,
		},
		{
			caption: "malformed TOML is an error",
			src:     `output = `,
			err:     true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			c, err := Parse([]byte(tt.src))
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.config, c)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`dedup = "set"`), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, grammar.DedupSet, c.DedupMode())

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestLoad_DefaultFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	require.NoError(t, os.WriteFile(DefaultFileName, []byte(`output = "artifacts"`), 0644))
	c, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "artifacts", c.Output)
	assert.Equal(t, grammar.DedupOrdered, c.DedupMode())
}
