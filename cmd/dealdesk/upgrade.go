package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/garrettladley/dealdesk/internal/client/release"
	"github.com/garrettladley/dealdesk/internal/version"
)

const installPath = "github.com/garrettladley/dealdesk/cmd/dealdesk@latest"

func upgradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade",
		Short: "Check for updates and install if available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			current := version.Get()

			latest, newer, err := release.New().Check(ctx, current)
			if err != nil {
				return fmt.Errorf("failed to check for updates: %w", err)
			}

			out := cmd.OutOrStdout()
			if !newer {
				fmt.Fprintf(out, "dealdesk is up to date (%s)\n", current)
				return nil
			}

			fmt.Fprintf(out, "Updating dealdesk %s → %s\n", current, latest.TagName)

			if version.IsHomebrew() {
				return run(ctx, "brew upgrade failed", "brew", "upgrade", "dealdesk")
			}
			if err := run(ctx, "upgrade failed", "go", "install", installPath); err != nil {
				return err
			}
			fmt.Fprintln(out, "Successfully updated!")
			return nil
		},
	}
}

func run(ctx context.Context, failure string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", failure, err)
	}
	return nil
}
