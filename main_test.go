package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetConfig(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	setDefaults()
	bindEnv()
}

func TestGenerateConfigDefaults(t *testing.T) {
	t.Setenv("CI_COMMIT_REF_NAME", "")
	t.Setenv("GITHUB_REF_NAME", "")
	resetConfig(t)

	cfg, err := loadGenerateConfig()
	require.NoError(t, err)

	assert.Equal(t, sourceLocal, cfg.Source)
	assert.Equal(t, "files_metadata.json", cfg.Output)
	assert.Equal(t, ".", cfg.Dir)
	assert.Equal(t, "josieljluz", cfg.GitHub.Owner)
	assert.Equal(t, "josieljluz.github.io", cfg.GitHub.Repo)
	assert.Equal(t, "main", cfg.GitHub.Branch)
	assert.Empty(t, cfg.GitHub.Dir)
	assert.Equal(t, 1, cfg.Concurrency)
}

func TestGenerateConfigBranchFromCI(t *testing.T) {
	t.Run("gitlab", func(t *testing.T) {
		t.Setenv("CI_COMMIT_REF_NAME", "release")
		t.Setenv("GITHUB_REF_NAME", "feature")
		resetConfig(t)

		cfg, err := loadGenerateConfig()
		require.NoError(t, err)
		assert.Equal(t, "release", cfg.GitHub.Branch)
	})

	t.Run("github", func(t *testing.T) {
		t.Setenv("CI_COMMIT_REF_NAME", "")
		t.Setenv("GITHUB_REF_NAME", "feature")
		resetConfig(t)

		cfg, err := loadGenerateConfig()
		require.NoError(t, err)
		assert.Equal(t, "feature", cfg.GitHub.Branch)
	})
}

func TestGenerateConfigTokenFromEnv(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "secret")
	resetConfig(t)

	cfg, err := loadGenerateConfig()
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.GitHub.Token)
}

func TestGenerateConfigValidate(t *testing.T) {
	valid := func() *generateConfig {
		cfg := &generateConfig{Source: sourceLocal, Output: "out.json", Concurrency: 1}
		cfg.GitHub.Owner = "owner"
		cfg.GitHub.Repo = "repo"
		cfg.GitHub.Branch = "main"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*generateConfig)
		wantErr string
	}{
		{name: "valid local", mutate: func(*generateConfig) {}},
		{name: "unknown source", mutate: func(c *generateConfig) { c.Source = "ftp" }, wantErr: "unknown source"},
		{name: "missing output", mutate: func(c *generateConfig) { c.Output = "" }, wantErr: "output"},
		{name: "missing repo", mutate: func(c *generateConfig) { c.GitHub.Repo = "" }, wantErr: "owner and repo"},
		{name: "missing branch", mutate: func(c *generateConfig) { c.GitHub.Branch = "" }, wantErr: "branch"},
		{name: "s3 without bucket", mutate: func(c *generateConfig) { c.Source = sourceS3 }, wantErr: "bucket"},
		{name: "s3 with bucket", mutate: func(c *generateConfig) { c.Source = sourceS3; c.S3.Bucket = "files" }},
		{name: "zero concurrency", mutate: func(c *generateConfig) { c.Concurrency = 0 }, wantErr: "concurrency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInitConfigReadsFile(t *testing.T) {
	resetConfig(t)

	path := filepath.Join(t.TempDir(), "filedex.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source: s3\ns3:\n  bucket: media\nexclude:\n  - \"*.tmp\"\n"), 0o644))

	cfgFile = path
	t.Cleanup(func() { cfgFile = "" })
	require.NoError(t, initConfig())

	cfg, err := loadGenerateConfig()
	require.NoError(t, err)
	assert.Equal(t, sourceS3, cfg.Source)
	assert.Equal(t, "media", cfg.S3.Bucket)
	assert.Equal(t, []string{"*.tmp"}, cfg.Exclude)
}

func TestInitConfigMissingExplicitFile(t *testing.T) {
	resetConfig(t)

	cfgFile = filepath.Join(t.TempDir(), "missing.yaml")
	t.Cleanup(func() { cfgFile = "" })

	assert.Error(t, initConfig())
}
