package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/valueprop/pkg/domain"
	"github.com/spf13/cobra"
)

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Inspect and clean up saved data",
	Long:  `List, inspect and remove the records valueprop keeps in the configured backend.`,
}

var storageLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List saved keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, _, closeFn, err := setup(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		info := w.Storage.Info(cmd.Context())
		out := cmd.OutOrStdout()
		if len(info.Keys) == 0 {
			fmt.Fprintln(out, "No saved data found.")
			return nil
		}
		for _, k := range info.Keys {
			fmt.Fprintln(out, "- "+k)
		}
		return nil
	},
}

var storageInspectCmd = &cobra.Command{
	Use:   "inspect [key]",
	Short: "Print a saved record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, _, closeFn, err := setup(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		key := w.Storage.Prefix() + args[0]
		raw, err := w.KV().Get(cmd.Context(), key)
		if errors.Is(err, domain.ErrKeyNotFound) {
			return fmt.Errorf("no saved data under %q", args[0])
		}
		if err != nil {
			return err
		}

		var pretty bytes.Buffer
		if err := json.Indent(&pretty, raw, "", "  "); err != nil {
			pretty.Reset()
			pretty.Write(raw)
		}
		fmt.Fprintln(cmd.OutOrStdout(), pretty.String())
		return nil
	},
}

var storageRmCmd = &cobra.Command{
	Use:   "rm [key]",
	Short: "Remove a saved record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, _, closeFn, err := setup(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		if !w.Storage.Remove(cmd.Context(), args[0]) {
			return fmt.Errorf("failed to remove %q", args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
		return nil
	},
}

var storageClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every saved record",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, _, closeFn, err := setup(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		if !w.Storage.Clear(cmd.Context()) {
			return errors.New("failed to clear storage")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Storage cleared.")
		return nil
	},
}

var storageInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the number of records and their total size",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, _, closeFn, err := setup(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		info := w.Storage.Info(cmd.Context())
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	},
}

func init() {
	storageCmd.AddCommand(storageLsCmd, storageInspectCmd, storageRmCmd, storageClearCmd, storageInfoCmd)
	rootCmd.AddCommand(storageCmd)
}
