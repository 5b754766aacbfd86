package main

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cx-tal-miterani/flight-reservation/internal/auth"
	"github.com/cx-tal-miterani/flight-reservation/internal/database"
	"github.com/cx-tal-miterani/flight-reservation/internal/engine"
)

var (
	stressSessions int
	stressCapacity int
	stressFID      int64
)

// stressCmd drives concurrent sessions at a single itinerary with limited
// capacity and reports how many bookings the store admitted. With capacity
// seats, exactly capacity sessions should succeed; the rest must see
// "booking failed" after their retried attempts re-read the full counter.
var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Contend concurrent sessions on one itinerary",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		_, pool, log, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		repo := database.NewRepository(pool)
		if err := repo.ClearBookingData(ctx); err != nil {
			return err
		}
		flight := database.Flight{
			FID:        stressFID,
			DayOfMonth: 1,
			CarrierID:  "ST",
			FlightNum:  "1",
			OriginCity: "Stress Origin",
			DestCity:   "Stress Dest",
			Duration:   60,
			Capacity:   stressCapacity,
			Price:      100,
		}
		// The flight may survive from a previous run; booking data was
		// cleared above, which is what the contention needs.
		if err := repo.InsertFlight(ctx, flight); err != nil {
			log.Debug().Err(err).Msg("flight already seeded")
		}

		var booked, rejected atomic.Int64
		g, gctx := errgroup.WithContext(ctx)
		for i := 0; i < stressSessions; i++ {
			username := fmt.Sprintf("stress-user-%d", i)
			g.Go(func() error {
				eng := engine.New(repo, database.NewTxManager(pool, log), auth.NewService(), log)
				sess := engine.NewSession()

				if err := eng.CreateCustomer(gctx, username, "password", 1000); err != nil {
					return err
				}
				if err := eng.Login(gctx, sess, username, "password"); err != nil {
					return err
				}
				if _, err := eng.Search(gctx, sess, flight.OriginCity, flight.DestCity, true, flight.DayOfMonth, 1); err != nil {
					return err
				}

				_, err := eng.Book(gctx, sess, 0)
				switch {
				case err == nil:
					booked.Add(1)
				case errors.Is(err, engine.ErrBookingFailed):
					rejected.Add(1)
				default:
					return err
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "sessions: %d booked: %d rejected: %d\n",
			stressSessions, booked.Load(), rejected.Load())
		if int(booked.Load()) != stressCapacity {
			return fmt.Errorf("expected %d bookings, got %d", stressCapacity, booked.Load())
		}
		return nil
	},
}

func init() {
	stressCmd.Flags().IntVar(&stressSessions, "sessions", 8, "number of concurrent sessions")
	stressCmd.Flags().IntVar(&stressCapacity, "capacity", 1, "seats on the contended flight")
	stressCmd.Flags().Int64Var(&stressFID, "fid", 999001, "fid for the seeded flight")
}
