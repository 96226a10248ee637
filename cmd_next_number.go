package main

import (
	"fmt"

	"github.com/Eursukkul/reservation-service/config"
	"github.com/Eursukkul/reservation-service/internal/cache"
	"github.com/Eursukkul/reservation-service/internal/repository"
	"github.com/Eursukkul/reservation-service/internal/sequence"
	"github.com/Eursukkul/reservation-service/internal/service"
	"github.com/Eursukkul/reservation-service/pkg/database"
	"github.com/Eursukkul/reservation-service/pkg/logger"
	"github.com/spf13/cobra"
)

func newNextNumberCmd() *cobra.Command {
	var tenantID, locationID string
	var count int

	cmd := &cobra.Command{
		Use:   "next-number",
		Short: "Print the reservation numbers the next submission would receive",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			log, err := logger.New(cfg.LogLevel, cfg.LogFormat, serviceName)
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := database.NewPostgresDB(cfg.DSN())
			if err != nil {
				return err
			}

			reservationRepo := repository.NewReservationRepository(db)
			names := cache.NewLocationNames(repository.NewLocationRepository(db), nil, 0, log)
			allocator := sequence.NewAllocator(service.NewNumberStore(reservationRepo), names, log)

			block, err := allocator.AllocateBlock(cmd.Context(), tenantID, locationID, count)
			if err != nil {
				return err
			}
			for _, n := range block.Numbers() {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tenantID, "tenant", "", "tenant id")
	cmd.Flags().StringVar(&locationID, "location", "", "location id")
	cmd.Flags().IntVar(&count, "count", 1, "number of rooms in the submission")
	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("location")
	return cmd
}
