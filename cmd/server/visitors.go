package main

import (
	"context"
	"fmt"

	"github.com/mx-space/blog-admin/internal/app"
	"github.com/mx-space/blog-admin/internal/database"
	"github.com/mx-space/blog-admin/internal/modules/stats/visitor"
	"github.com/mx-space/blog-admin/internal/pkg/metrics"
	"github.com/spf13/cobra"
)

func newVisitorsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visitors",
		Short: "Maintain the visitor log",
	}
	cmd.AddCommand(newPurgeCmd(opts))
	return cmd
}

func newPurgeCmd(opts *rootOptions) *cobra.Command {
	var q visitor.DeleteQuery
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete visitor log entries inside a time range",
		Example: `  blog-admin visitors purge --start 2024-01-01 --end 2024-01-31
  blog-admin visitors purge --start 2024-03-01T00:00 --end 2024-03-02T00:00 --country China`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)
			defer logger.Sync()

			ctx := cmd.Context()
			store, err := database.Connect(ctx, cfg.Mongo)
			if err != nil {
				return err
			}
			defer store.Close(context.Background())

			svc, err := app.NewVisitorService(store.DB(), cfg, logger, metrics.NewNop())
			if err != nil {
				return err
			}
			res, err := svc.DeleteByRange(ctx, q)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&q.StartDate, "start", "", "range start (inclusive)")
	f.StringVar(&q.EndDate, "end", "", "range end (inclusive)")
	f.StringVar(&q.Country, "country", "", "only entries from this country")
	f.StringVar(&q.Region, "region", "", "only entries from this region")
	f.StringVar(&q.Article, "article", "", "only entries of this article id")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}
