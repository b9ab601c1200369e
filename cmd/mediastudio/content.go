package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"mediastudio/internal/content"
	"mediastudio/internal/markdown"
)

func (a *app) contentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Inspect the embedded site content",
	}
	cmd.AddCommand(a.contentCheckCmd(), a.contentExportCmd())
	return cmd
}

// contentCheckCmd loads the collections, which runs every integrity check,
// and renders each post body with the configured renderer.
func (a *app) contentCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the content collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := content.Load()
			if err != nil {
				return err
			}
			md, err := markdown.ByName(a.cfg.MarkdownRenderer)
			if err != nil {
				return err
			}
			for _, p := range site.Posts() {
				if _, err := md.Render(p.Body); err != nil {
					return fmt.Errorf("render post %q: %w", p.Slug, err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "content %s ok: %d posts, %d projects, %d services, %d equipment, %d team members\n",
				site.Version(), len(site.Posts()), len(site.Projects()), len(site.Services()),
				len(site.Equipment()), len(site.Team()))
			return nil
		},
	}
}

func (a *app) contentExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every collection as one JSON document",
		Long: `export dumps the collections for external tools such as a sitemap
generator. With --out the file is replaced atomically; otherwise the JSON
goes to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := content.Load()
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(site.Snapshot(), "", "  ")
			if err != nil {
				return fmt.Errorf("encode snapshot: %w", err)
			}
			data = append(data, '\n')

			if out == "" || out == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := atomic.WriteFile(out, bytes.NewReader(data)); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			// atomic.WriteFile keeps the temp file's 0600 mode.
			if err := os.Chmod(out, 0o644); err != nil {
				return fmt.Errorf("chmod %s: %w", out, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}
