package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devfactory/internal/config"
	"devfactory/internal/docs"
	"devfactory/internal/imageutils"
	"devfactory/internal/logging"
	"devfactory/internal/mcpserver"

	"github.com/spf13/cobra"
)

// serverSetup builds the tool registry of one server. The returned cleanup
// releases whatever the registry holds open and is never nil on success.
type serverSetup func(logger *logging.AppLogger) (*mcpserver.Registry, func(), error)

type docsServer struct {
	use     string
	profile docs.Profile
}

var (
	themeServer = docsServer{use: "theme", profile: docs.ThemeProfile}
	kitServer   = docsServer{use: "kit", profile: docs.KitProfile}
)

const imageUtilsInstructions = "Saves base64 encoded images to disk. " +
	"Pass the image data and a file path relative to the working directory."

func newDocsCmd(s docsServer) *cobra.Command {
	var docsDir string

	setup := func(logger *logging.AppLogger) (*mcpserver.Registry, func(), error) {
		resolved, err := config.ResolveDocsDir(config.Options{
			ExtensionKey: s.profile.ExtensionKey,
			ConfigPath:   configPath,
			DocsDir:      docsDir,
			Logger:       logger,
		})
		if err != nil {
			return nil, nil, err
		}

		catalog, err := docs.Open(resolved.Dir(), s.profile.OverviewTitle, logger)
		if err != nil {
			return nil, nil, err
		}

		registry, err := mcpserver.NewRegistry(docs.Tools(s.profile, catalog)...)
		if err != nil {
			catalog.Close()
			return nil, nil, err
		}

		logger.Info("Docs directory", "server", s.profile.ServerName, "dir", resolved.Dir())
		return registry, func() { catalog.Close() }, nil
	}

	cmd := &cobra.Command{
		Use:   s.use,
		Short: fmt.Sprintf("Serve %s documentation over stdio", s.profile.Nouns),
		Long:  s.profile.Instructions,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), s.profile.ServerName, s.profile.Instructions, setup)
		},
	}
	cmd.PersistentFlags().StringVar(&docsDir, "docs-dir", "", "Docs directory, overriding extensions."+s.profile.ExtensionKey+".docsDir from the config")

	cmd.AddCommand(newToolsCmd(s.profile.ServerName, setup))
	cmd.AddCommand(newCallCmd(s.profile.ServerName, setup))
	return cmd
}

func newImageUtilsCmd() *cobra.Command {
	setup := func(logger *logging.AppLogger) (*mcpserver.Registry, func(), error) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, nil, fmt.Errorf("cannot determine working directory: %w", err)
		}

		registry, err := mcpserver.NewRegistry(imageutils.NewSaver(wd, logger).Tools()...)
		if err != nil {
			return nil, nil, err
		}
		return registry, func() {}, nil
	}

	cmd := &cobra.Command{
		Use:   imageutils.ServerName,
		Short: "Serve the base64 image saver over stdio",
		Long:  imageUtilsInstructions,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), imageutils.ServerName, imageUtilsInstructions, setup)
		},
	}

	cmd.AddCommand(newToolsCmd(imageutils.ServerName, setup))
	cmd.AddCommand(newCallCmd(imageutils.ServerName, setup))
	return cmd
}

// runServer serves stdio until the client closes stdin or the process is
// interrupted. Errors are returned to Execute, which logs them.
func runServer(parent context.Context, name, instructions string, setup serverSetup) error {
	logger := newLogger(name)
	start := time.Now()

	registry, cleanup, err := setup(logger)
	if err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	defer cleanup()
	logger.LogPerformance("server setup", start)

	if logger.IsDebug() {
		for _, tool := range registry.Tools() {
			logger.Debug("Registered tool", "server", name, "tool", tool.Name)
		}
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := mcpserver.New(os.Stdin, os.Stdout, registry, mcpserver.Config{
		Name:         name,
		Version:      version,
		Instructions: instructions,
		Logger:       logger,
	})

	if err := srv.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s stopped: %w", name, err)
	}
	logger.Info("Server stopped", "server", name)
	return nil
}
