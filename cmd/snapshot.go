package cmd

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"metalprices/internal/model"
)

var noCache bool

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print one price snapshot as JSON",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		// stdout carries the snapshot, so logs go to stderr here.
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cnf.Logger.ParsedSlogLevel}))

		cache, closeCache := mustNewCacheStore(ctx)
		defer closeCache()

		snapshotUC := newSnapshotUseCase(cache)

		var snapshot model.Snapshot
		if noCache {
			snapshot = snapshotUC.Refresh(ctx)
		} else {
			snapshot = snapshotUC.GetSnapshot(ctx)
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		cobra.CheckErr(encoder.Encode(snapshot))
	},
}

func init() {
	snapshotCmd.Flags().BoolVar(&noCache, "no-cache", false, "skip the cache lookup")
}
