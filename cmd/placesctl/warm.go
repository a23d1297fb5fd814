package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/places-microservice/internal/config"
	"github.com/places-microservice/internal/domain"
	"github.com/places-microservice/internal/domain/repository"
	"github.com/places-microservice/internal/repository/cache"
	redisRepo "github.com/places-microservice/internal/repository/redis"
)

func newWarmCmd(opts *globalOptions) *cobra.Command {
	var (
		lat, lon   float64
		radius     int
		categories []string
		provider   string
		wait       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Publish a warm-up request for the places worker",
		Long: `Publishes a PlacesWarmEvent to stream:places:warm. With --wait the command
blocks until the worker answers in stream:places:ready.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(opts.output); err != nil {
				return err
			}
			cfg, err := config.LoadFile(opts.configPath)
			if err != nil {
				return err
			}

			redisClient, err := cache.NewRedis(&cfg.Redis, zap.NewNop())
			if err != nil {
				return err
			}
			defer func() { _ = redisClient.Close() }()

			ctx := cmd.Context()
			event := domain.PlacesWarmEvent{
				RequestID:    uuid.New(),
				Lat:          lat,
				Lon:          lon,
				RadiusMeters: radius,
				Categories:   categories,
				Provider:     provider,
			}

			streams := redisRepo.NewStreamRepository(redisClient.Client(), time.Second, zap.NewNop())

			// ответы, пришедшие после lastID, относятся к этому запросу или более поздним
			lastID, err := streams.LastMessageID(ctx, domain.StreamPlacesReady)
			if err != nil {
				return err
			}

			if err := streams.PublishToStream(ctx, domain.StreamPlacesWarm, event); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published warm request %s\n", event.RequestID)

			if wait <= 0 {
				return nil
			}

			waitCtx, cancel := context.WithTimeout(ctx, wait)
			defer cancel()

			ready, err := waitReady(waitCtx, streams, lastID, event.RequestID)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), opts.output, ready, func(w *tabwriter.Writer) {
				if ready.Error != "" {
					fmt.Fprintf(w, "FAILED\t%s\n", ready.Error)
					return
				}
				fmt.Fprintf(w, "TOTAL\t%d\n", ready.Total)
				fmt.Fprintf(w, "SOURCE\t%s\n", ready.Source)
			})
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "center latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "center longitude")
	cmd.Flags().IntVarP(&radius, "radius", "r", 0, "search radius in meters")
	cmd.Flags().StringSliceVar(&categories, "categories", nil, "categories")
	cmd.Flags().StringVarP(&provider, "provider", "p", "", "provider (osm|google)")
	cmd.Flags().DurationVar(&wait, "wait", 30*time.Second, "how long to wait for the worker (0 - do not wait)")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	return cmd
}

// waitReady читает stream:places:ready после lastID до ответа с нужным request_id
func waitReady(ctx context.Context, streams repository.StreamRepository, lastID string, requestID uuid.UUID) (*domain.PlacesReadyEvent, error) {
	for {
		msgs, err := streams.ReadAfter(ctx, domain.StreamPlacesReady, lastID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("no answer for %s: %w", requestID, ctx.Err())
			}
			return nil, err
		}

		for _, msg := range msgs {
			lastID = msg.ID

			var ready domain.PlacesReadyEvent
			if err := json.Unmarshal([]byte(msg.Data), &ready); err != nil {
				continue
			}
			if ready.RequestID == requestID {
				return &ready, nil
			}
		}

		if ctx.Err() != nil {
			return nil, fmt.Errorf("no answer for %s: %w", requestID, ctx.Err())
		}
	}
}
