package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"flowShopOpt/internal/report"
	"flowShopOpt/internal/store"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit int
		batch string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored bench batches or print one of them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db := a.cfg.DBPath
			if db == "" {
				return errors.New("не задан путь к базе (--db или db_path в конфигурации)")
			}
			s, err := store.NewStore(db)
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			if batch != "" {
				id, err := uuid.Parse(batch)
				if err != nil {
					return fmt.Errorf("batch %q: %w", batch, err)
				}
				records, err := s.Results(cmd.Context(), id)
				if err != nil {
					return err
				}
				return report.WriteTable(out, records)
			}

			batches, err := s.ListBatches(cmd.Context(), limit)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "Batch\tCreated\tSource\tResults\t")
			for _, b := range batches {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t\n", b.ID, b.CreatedAt.Local().Format(time.DateTime), b.Source, b.Results)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&a.flags.DBPath, "db", "", "SQLite-файл истории прогонов")
	cmd.Flags().IntVar(&limit, "limit", 20, "сколько последних прогонов показать")
	cmd.Flags().StringVar(&batch, "batch", "", "идентификатор прогона для вывода таблицы")
	return cmd
}
