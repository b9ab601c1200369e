package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mediastudio/internal/cache"
	"mediastudio/internal/queue"
)

func (a *app) cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Maintain the Valkey response cache and notification stream",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "flush",
		Short: "Drop every cached API response",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := cache.ConnectValkey(a.cfg.ValkeyAddr(), a.cfg.ValkeyPassword, a.cfg.ValkeyDB)
			if err != nil {
				return err
			}
			defer client.Close()

			n := cache.NewResponseCache(client, a.cfg.CacheTTL, "").InvalidateAll(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d cached responses\n", n)
			return nil
		},
	})

	var count int64
	recent := &cobra.Command{
		Use:   "notifications",
		Short: "Print the newest inquiry notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := cache.ConnectValkey(a.cfg.ValkeyAddr(), a.cfg.ValkeyPassword, a.cfg.ValkeyDB)
			if err != nil {
				return err
			}
			defer client.Close()

			items, err := queue.NewNotifier(client, queue.DefaultStream).Recent(cmd.Context(), count)
			if err != nil {
				return err
			}
			for _, inq := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s <%s>  %s\n", inq.CreatedAt.Format("2006-01-02 15:04"), inq.Name, inq.Email, inq.ServiceType)
			}
			return nil
		},
	}
	recent.Flags().Int64VarP(&count, "count", "n", 10, "number of notifications")
	cmd.AddCommand(recent)

	return cmd
}
