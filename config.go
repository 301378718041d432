package main

import (
	"fmt"
	"strings"
	"time"

	"filedex/clients"
	"filedex/generator"
	"filedex/server"

	"github.com/spf13/viper"
)

const (
	defaultOwner  = "josieljluz"
	defaultRepo   = "josieljluz.github.io"
	defaultBranch = "main"
)

// Source kinds accepted by --source
const (
	sourceLocal  = "local"
	sourceGitHub = "github"
	sourceS3     = "s3"
)

func init() {
	setDefaults()
}

func setDefaults() {
	viper.SetDefault("source", sourceLocal)
	viper.SetDefault("output", generator.DefaultOutput)
	viper.SetDefault("dir", ".")
	viper.SetDefault("concurrency", 1)
	viper.SetDefault("github.owner", defaultOwner)
	viper.SetDefault("github.repo", defaultRepo)
	viper.SetDefault("github.branch", defaultBranch)
	viper.SetDefault("github.api_url", clients.DefaultGitHubAPI)
	viper.SetDefault("github.raw_host", clients.DefaultRawHost)
	viper.SetDefault("github.timeout", 30*time.Second)
	viper.SetDefault("s3.region", "us-east-1")
	viper.SetDefault("serve.addr", server.DefaultAddr)
	viper.SetDefault("serve.metadata", generator.DefaultOutput)
	viper.SetDefault("serve.cache_size", 256)
}

func bindEnv() {
	viper.SetEnvPrefix("FILEDEX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// branch and token names set by GitLab and GitHub CI
	viper.BindEnv("github.branch", "FILEDEX_GITHUB_BRANCH", "CI_COMMIT_REF_NAME", "GITHUB_REF_NAME")
	viper.BindEnv("github.token", "FILEDEX_GITHUB_TOKEN", "GITHUB_TOKEN")
	viper.BindEnv("s3.access_key", "FILEDEX_S3_ACCESS_KEY", "AWS_ACCESS_KEY_ID")
	viper.BindEnv("s3.secret_key", "FILEDEX_S3_SECRET_KEY", "AWS_SECRET_ACCESS_KEY")
}

// generateConfig is the resolved configuration of a generate run
type generateConfig struct {
	Source      string
	Output      string
	Dir         string
	Exclude     []string
	Concurrency int
	GitHub      clients.GitHubConfig
	RawHost     string
	S3          clients.S3Config
}

func loadGenerateConfig() (*generateConfig, error) {
	cfg := &generateConfig{
		Source:      strings.ToLower(viper.GetString("source")),
		Output:      viper.GetString("output"),
		Dir:         viper.GetString("dir"),
		Exclude:     viper.GetStringSlice("exclude"),
		Concurrency: viper.GetInt("concurrency"),
		GitHub: clients.GitHubConfig{
			BaseURL: viper.GetString("github.api_url"),
			Token:   viper.GetString("github.token"),
			Owner:   viper.GetString("github.owner"),
			Repo:    viper.GetString("github.repo"),
			Branch:  viper.GetString("github.branch"),
			Dir:     viper.GetString("dir"),
			Timeout: viper.GetDuration("github.timeout"),
		},
		RawHost: viper.GetString("github.raw_host"),
		S3: clients.S3Config{
			Bucket:    viper.GetString("s3.bucket"),
			Prefix:    viper.GetString("s3.prefix"),
			Region:    viper.GetString("s3.region"),
			Endpoint:  viper.GetString("s3.endpoint"),
			AccessKey: viper.GetString("s3.access_key"),
			SecretKey: viper.GetString("s3.secret_key"),
		},
	}

	if cfg.GitHub.Dir == "." {
		cfg.GitHub.Dir = ""
	}

	return cfg, cfg.Validate()
}

// Validate checks the settings required by the selected source
func (c *generateConfig) Validate() error {
	if c.Output == "" {
		return fmt.Errorf("output file is required")
	}

	switch c.Source {
	case sourceLocal, sourceGitHub:
		if c.GitHub.Owner == "" || c.GitHub.Repo == "" {
			return fmt.Errorf("github owner and repo are required")
		}
		if c.GitHub.Branch == "" {
			return fmt.Errorf("branch is required")
		}
	case sourceS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("s3 bucket is required")
		}
	default:
		return fmt.Errorf("unknown source %q (expected %s, %s or %s)", c.Source, sourceLocal, sourceGitHub, sourceS3)
	}

	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1")
	}

	return nil
}

// serveConfig is the resolved configuration of the catalog server
type serveConfig struct {
	Metadata string
	Exclude  []string
	Server   server.Config
}

func loadServeConfig() *serveConfig {
	return &serveConfig{
		Metadata: viper.GetString("serve.metadata"),
		Exclude:  viper.GetStringSlice("exclude"),
		Server: server.Config{
			Addr:       viper.GetString("serve.addr"),
			DateLayout: viper.GetString("serve.date_layout"),
			CacheSize:  viper.GetInt("serve.cache_size"),
		},
	}
}
