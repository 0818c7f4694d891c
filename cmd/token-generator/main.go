// Command token-generator mints an operator token for the boundq admin API
// using the configured JWT secret.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/phrazzld/boundq/internal/config"
	"github.com/phrazzld/boundq/internal/service/auth"
)

var errAuthDisabled = errors.New("auth.jwt_secret is not configured")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("token-generator", flag.ContinueOnError)
	flags.SetOutput(stderr)
	subject := flags.StringP("subject", "s", "", "operator name recorded in the token (required)")
	configPath := flags.StringP("config", "c", "", "path to a config file (default: ./config.yaml if present)")

	if err := flags.Parse(args); err != nil {
		return 2
	}
	if *subject == "" {
		fmt.Fprintln(stderr, "--subject is required")
		flags.PrintDefaults()
		return 2
	}

	token, err := generate(*configPath, *subject)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, token)
	return 0
}

func generate(configPath, subject string) (string, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return "", err
	}
	if !cfg.Auth.Enabled() {
		return "", errAuthDisabled
	}

	svc, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return "", fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	return svc.GenerateToken(context.Background(), subject)
}
