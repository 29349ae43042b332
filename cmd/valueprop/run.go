package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/valueprop/internal/cli"
	"github.com/aretw0/valueprop/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive wizard",
	Long: `Walks through the five steps in the terminal. Answers are saved after every change,
so you can quit at any point and resume later.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, logger, closeFn, err := setup(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		plain, _ := cmd.Flags().GetBool("plain")
		rich := !plain && tui.IsTerminal(os.Stdout)

		opts := []cli.Option{cli.WithLogger(logger), cli.WithBanner(rich)}
		if rich {
			opts = append(opts, cli.WithRenderer(tui.NewRenderer()))
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err = cli.NewSession(w, cmd.InOrStdin(), cmd.OutOrStdout(), opts...).Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("plain", false, "Disable colours and markdown rendering")
}
