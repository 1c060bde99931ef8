package main

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/leadscout/internal/domain/search/request"
	chiTransport "github.com/kailas-cloud/leadscout/internal/transport/chi"
)

type searchFlags struct {
	lat, lng    float64
	city, state string
	radiusKm    float64
	target      int
	model       string
	quiet       bool
}

func newSearchCmd(c *cli) *cobra.Command {
	f := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Run one search and print the merged leads as JSON",
		Long: "Fans the query out into concurrent grounded prompts, prints progress to stderr " +
			"and the deduplicated leads to stdout.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			req, err := request.New(args[0],
				request.Location{Latitude: f.lat, Longitude: f.lng},
				request.Filters{
					TargetCount: f.target,
					City:        f.city,
					State:       f.state,
					RadiusKm:    f.radiusKm,
				},
			)
			if err != nil {
				return fmt.Errorf("search request: %w", err)
			}

			cfg := c.cfg
			if f.model != "" {
				cfg.Generator.Model = f.model
			}

			a, err := buildApp(ctx, cfg, c.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			stderr := cmd.ErrOrStderr()
			records, err := a.search.Search(ctx, &req, func(completed, total int) {
				if !f.quiet {
					_, _ = fmt.Fprintf(stderr, "progress: %d/%d\n", completed, total)
				}
			})
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(chiTransport.NewSearchResponse(records)); err != nil {
				return fmt.Errorf("write results: %w", err)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&f.lat, "lat", 0, "searcher latitude")
	flags.Float64Var(&f.lng, "lng", 0, "searcher longitude")
	flags.StringVar(&f.city, "city", "", "city name (used together with --state)")
	flags.StringVar(&f.state, "state", "", "two-letter state code")
	flags.Float64Var(&f.radiusKm, "radius", 0, "search radius in km around the coordinates")
	flags.IntVar(&f.target, "target", request.DefaultTargetCount, "desired number of leads")
	flags.StringVar(&f.model, "model", "", "override the configured model")
	flags.BoolVarP(&f.quiet, "quiet", "q", false, "suppress progress output")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")

	return cmd
}
