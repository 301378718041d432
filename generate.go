package main

import (
	"fmt"
	"log/slog"

	"filedex/clients"
	"filedex/exclusion"
	"filedex/generator"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write files_metadata.json for a directory, repository or bucket",
	Long: `generate lists the files of the configured source, drops the excluded
names and writes the listing as an indented JSON array.

Sources:
  local   a directory on disk, download URLs point at raw.githubusercontent.com
  github  a repository directory through the GitHub API, modification times
          come from the commit history
  s3      an S3 bucket prefix (or any S3 compatible endpoint)`,
	RunE: runGenerate,
}

func init() {
	addGenerateFlags(generateCmd)
}

func addGenerateFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.String("source", sourceLocal, "file source: local, github or s3")
	flags.StringP("output", "o", generator.DefaultOutput, "output file")
	flags.StringP("dir", "d", ".", "directory to list (repository path for github)")
	flags.StringSliceP("exclude", "e", nil, "extra file names or gitignore patterns to exclude")
	flags.Int("concurrency", 1, "parallel modification time lookups (github)")

	// GitHub flags
	flags.String("owner", defaultOwner, "repository owner")
	flags.String("repo", defaultRepo, "repository name")
	flags.String("branch", defaultBranch, "branch used for download URLs and history")
	flags.String("github-api", clients.DefaultGitHubAPI, "GitHub API base URL")
	flags.String("raw-host", clients.DefaultRawHost, "host serving raw files for local listings")

	// S3 flags
	flags.String("s3-bucket", "", "S3 bucket name")
	flags.String("s3-prefix", "", "S3 key prefix")
	flags.String("s3-region", "us-east-1", "S3 region")
	flags.String("s3-endpoint", "", "S3 compatible endpoint URL")

	bindFlags(flags, map[string]string{
		"source":      "source",
		"output":      "output",
		"dir":         "dir",
		"exclude":     "exclude",
		"concurrency": "concurrency",
		"owner":       "github.owner",
		"repo":        "github.repo",
		"branch":      "github.branch",
		"github-api":  "github.api_url",
		"raw-host":    "github.raw_host",
		"s3-bucket":   "s3.bucket",
		"s3-prefix":   "s3.prefix",
		"s3-region":   "s3.region",
		"s3-endpoint": "s3.endpoint",
	})
}

// bindFlags binds flags to viper keys. Flags are only bound when the command
// runs so that root and generate can share the keys.
func bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	cobra.OnInitialize(func() {
		for name, key := range keys {
			if flags.Changed(name) {
				viper.BindPFlag(key, flags.Lookup(name))
			}
		}
	})
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadGenerateConfig()
	if err != nil {
		return err
	}

	source, err := newSource(cmd, cfg)
	if err != nil {
		return err
	}

	gen := generator.New(&generator.Dependencies{
		Source:  source,
		Exclude: exclusion.Default(cfg.Exclude...),
		Fs:      afero.NewOsFs(),
		Logger:  slog.Default().With("source", cfg.Source),
	})

	result, err := gen.Run(ctx, generator.Config{
		Output:      cfg.Output,
		Concurrency: cfg.Concurrency,
	})
	if err != nil {
		return fmt.Errorf("failed to generate metadata: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d files\n", result.Output, len(result.Files))
	return nil
}

func newSource(cmd *cobra.Command, cfg *generateConfig) (generator.Source, error) {
	ctx := cmd.Context()

	switch cfg.Source {
	case sourceGitHub:
		gh := clients.NewGitHubClient(cfg.GitHub)
		if err := gh.Authenticate(ctx); err != nil {
			return nil, fmt.Errorf("failed to authenticate with GitHub: %w", err)
		}
		return gh, nil
	case sourceS3:
		sc, err := clients.NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 client: %w", err)
		}
		return sc, nil
	default:
		return clients.NewLocalClient(afero.NewOsFs(), clients.LocalConfig{
			Dir:    cfg.Dir,
			Host:   cfg.RawHost,
			Owner:  cfg.GitHub.Owner,
			Repo:   cfg.GitHub.Repo,
			Branch: cfg.GitHub.Branch,
		}), nil
	}
}
