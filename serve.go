package main

import (
	"fmt"
	"log/slog"

	"filedex/catalog"
	"filedex/exclusion"
	"filedex/generator"
	"filedex/server"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the searchable catalog of a metadata document",
	Long: `serve loads files_metadata.json from a path or an http(s) URL and serves
a catalog page with search, sorting, pagination and a light/dark/system theme.`,
	RunE: runServe,
}

func init() {
	flags := serveCmd.Flags()
	flags.StringP("addr", "a", server.DefaultAddr, "listen address")
	flags.StringP("metadata", "m", generator.DefaultOutput, "metadata document path or URL")
	flags.String("date-layout", catalog.DefaultDateLayout, "Go time layout for modification dates")
	flags.Int("cache-size", 256, "rendered pages kept in memory")

	bindFlags(flags, map[string]string{
		"addr":        "serve.addr",
		"metadata":    "serve.metadata",
		"date-layout": "serve.date_layout",
		"cache-size":  "serve.cache_size",
	})
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadServeConfig()

	loader := catalog.NewLoader(cfg.Metadata, catalog.LoaderOptions{
		Fs:      afero.NewOsFs(),
		Exclude: exclusion.Default(cfg.Exclude...),
	})

	srv, err := server.New(&cfg.Server, loader)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	slog.Info("serving catalog", "metadata", loader.Source(), "addr", cfg.Server.Addr)
	return srv.Start(cmd.Context())
}
