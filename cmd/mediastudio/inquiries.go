package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"mediastudio/internal/database"
	"mediastudio/internal/storage"
	"mediastudio/internal/store"
)

func (a *app) inquiriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inquiries",
		Short: "Inspect and prune stored inquiries",
	}
	cmd.AddCommand(a.inquiriesListCmd(), a.inquiriesShowCmd(), a.inquiriesPurgeCmd())
	return cmd
}

// openInquiries connects to the database. The returned func closes it.
func (a *app) openInquiries() (*store.InquiryStore, func(), error) {
	db, err := database.Connect(a.cfg.DSN())
	if err != nil {
		return nil, nil, err
	}
	return store.NewInquiryStore(db), func() { db.Close() }, nil
}

func (a *app) inquiriesListCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent inquiries",
		RunE: func(cmd *cobra.Command, args []string) error {
			inquiries, closeDB, err := a.openInquiries()
			if err != nil {
				return err
			}
			defer closeDB()

			items, err := inquiries.ListRecent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			total, err := inquiries.Count(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tRECEIVED\tNAME\tEMAIL\tSERVICE\tBUDGET")
			for _, inq := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					inq.ID, inq.CreatedAt.Format(time.DateTime), inq.Name, inq.Email, inq.ServiceType, inq.Budget)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d inquiries\n", len(items), total)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of inquiries to show")
	return cmd
}

func (a *app) inquiriesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Print one inquiry and a link to its archived copy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid inquiry id %q: %w", args[0], err)
			}

			inquiries, closeDB, err := a.openInquiries()
			if err != nil {
				return err
			}
			defer closeDB()

			inq, err := inquiries.FindByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if inq == nil {
				return fmt.Errorf("inquiry %s not found", id)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:        %s\n", inq.ID)
			fmt.Fprintf(out, "Received:  %s\n", inq.CreatedAt.Format(time.RFC3339))
			fmt.Fprintf(out, "Name:      %s\n", inq.Name)
			fmt.Fprintf(out, "Email:     %s\n", inq.Email)
			if inq.Phone != nil {
				fmt.Fprintf(out, "Phone:     %s\n", *inq.Phone)
			}
			if inq.Company != nil {
				fmt.Fprintf(out, "Company:   %s\n", *inq.Company)
			}
			fmt.Fprintf(out, "Service:   %s\n", inq.ServiceType)
			fmt.Fprintf(out, "Budget:    %s\n", inq.Budget)
			fmt.Fprintf(out, "Timeline:  %s\n", inq.Timeline)
			fmt.Fprintf(out, "Newsletter: %t\n", inq.Newsletter)
			fmt.Fprintf(out, "\n%s\n", inq.Message)

			if !a.cfg.ArchiveEnabled() {
				return nil
			}
			archive, err := storage.New(a.cfg.S3Endpoint, a.cfg.S3Region, a.cfg.S3AccessKey, a.cfg.S3SecretKey, a.cfg.S3Bucket)
			if err != nil || archive == nil {
				return err
			}
			link, err := archive.PresignedURL(cmd.Context(), storage.Key(*inq), 15*time.Minute)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nArchived copy (15 min): %s\n", link)
			return nil
		},
	}
}

func (a *app) inquiriesPurgeCmd() *cobra.Command {
	var olderThan time.Duration
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete inquiries older than a retention period",
		RunE: func(cmd *cobra.Command, args []string) error {
			if olderThan <= 0 {
				return fmt.Errorf("--older-than must be positive")
			}
			inquiries, closeDB, err := a.openInquiries()
			if err != nil {
				return err
			}
			defer closeDB()

			n, err := inquiries.DeleteOlderThan(cmd.Context(), time.Now().Add(-olderThan))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d inquiries\n", n)
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 365*24*time.Hour, "retention period")
	return cmd
}
