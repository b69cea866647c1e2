// Package app provides the command-line interface for the appwrite client.
//
// Commands are organized as a root command with subcommands, each built by
// a NewXCommand function that receives the shared GlobalOptions.
package app

import (
	"fmt"

	"github.com/GriffinCanCode/appwrite-go/internal/infrastructure/config"
	"github.com/GriffinCanCode/appwrite-go/internal/infrastructure/logging"
	"github.com/GriffinCanCode/appwrite-go/internal/providers/http/client"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	// cliName is the name of the CLI application
	cliName = "appwrite"

	// cliDescription is the short description shown in help text
	cliDescription = "appwrite - call endpoints and upload files"
)

// GlobalOptions holds options that are common to all commands
type GlobalOptions struct {
	// ConfigFile is a YAML or TOML config file. When empty, APPWRITE_*
	// environment variables are used.
	ConfigFile string

	// Endpoint, Project and Key override the loaded configuration
	Endpoint string
	Project  string
	Key      string

	// SelfSigned disables TLS certificate verification
	SelfSigned bool

	// Verbose enables debug logging to stderr
	Verbose bool
}

// NewAppwriteCommand creates the root command with all subcommands.
//
// Example:
//
//	cmd := NewAppwriteCommand()
//	if err := cmd.ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
func NewAppwriteCommand() *cobra.Command {
	opts := &GlobalOptions{}

	cmd := &cobra.Command{
		Use:   cliName,
		Short: cliDescription,
		Long: `appwrite is a command-line client for an Appwrite server.

Configuration is read from APPWRITE_* environment variables, or from a
YAML/TOML file given with --config. Flags override both.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "config file (.yaml, .yml or .toml)")
	cmd.PersistentFlags().StringVar(&opts.Endpoint, "endpoint", "", "API endpoint, e.g. https://cloud.appwrite.io/v1")
	cmd.PersistentFlags().StringVar(&opts.Project, "project", "", "project id")
	cmd.PersistentFlags().StringVar(&opts.Key, "key", "", "API key")
	cmd.PersistentFlags().BoolVar(&opts.SelfSigned, "self-signed", false, "accept self-signed certificates")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(
		NewCallCommand(opts),
		NewUploadCommand(opts),
		NewDownloadCommand(opts),
		NewVersionCommand(opts),
	)

	return cmd
}

// loadConfig resolves configuration from file or environment, then applies
// flag overrides.
func loadConfig(opts *GlobalOptions) (*config.Config, error) {
	var cfg *config.Config
	if opts.ConfigFile != "" {
		loaded, err := config.LoadFile(opts.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.Endpoint != "" {
		cfg.Endpoint = opts.Endpoint
	}
	if opts.Project != "" {
		cfg.Project = opts.Project
	}
	if opts.Key != "" {
		cfg.Key = opts.Key
	}
	if opts.SelfSigned {
		cfg.SelfSigned = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(opts *GlobalOptions, cfg *config.Config) (*zap.Logger, error) {
	if opts.Verbose {
		return logging.NewDevelopment(), nil
	}
	return logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
}

// getClient builds a configured client and its logger
func getClient(opts *GlobalOptions) (*client.Client, *zap.Logger, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, nil, err
	}

	logger, err := newLogger(opts, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	c, err := client.New(cfg, client.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	return c, logger, nil
}
