package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/courierlab/dispatchsim/config"
	"github.com/courierlab/dispatchsim/infra/record"
	"github.com/courierlab/dispatchsim/pkg/export"
)

var (
	recordsKind    string
	recordsFormat  string
	recordsStart   int64
	recordsEnd     int64
	recordsCourier int64
	recordsOrder   int64
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Query the record store of a finished run",
	RunE:  queryRecords,
}

func init() {
	recordsCmd.Flags().StringVar(&recordsKind, "kind", "assignments", "record stream: assignments, cycles or transitions")
	recordsCmd.Flags().StringVar(&recordsFormat, "format", "json", "output format: json or csv")
	recordsCmd.Flags().Int64Var(&recordsStart, "start", 0, "inclusive unix second lower bound")
	recordsCmd.Flags().Int64Var(&recordsEnd, "end", 0, "exclusive unix second upper bound")
	recordsCmd.Flags().Int64Var(&recordsCourier, "courier", 0, "filter by courier id")
	recordsCmd.Flags().Int64Var(&recordsOrder, "order", 0, "filter by order id")
	rootCmd.AddCommand(recordsCmd)
}

func queryRecords(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, err := record.NewStore(cfg.Records)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	q := record.Query{
		Start:     recordsStart,
		End:       recordsEnd,
		CourierID: recordsCourier,
		OrderID:   recordsOrder,
	}
	out := cmd.OutOrStdout()

	switch recordsKind {
	case "assignments":
		recs, err := store.QueryAssignments(ctx, q)
		if err != nil {
			return err
		}
		if recordsFormat == "csv" {
			return export.WriteAssignmentsCSV(out, recs)
		}
		return writeJSON(out, recs)
	case "cycles":
		recs, err := store.QueryCycles(ctx, q)
		if err != nil {
			return err
		}
		if recordsFormat == "csv" {
			return export.WriteCyclesCSV(out, recs)
		}
		return writeJSON(out, recs)
	case "transitions":
		recs, err := store.QueryTransitions(ctx, q)
		if err != nil {
			return err
		}
		if recordsFormat == "csv" {
			return export.WriteTransitionsCSV(out, recs)
		}
		return writeJSON(out, recs)
	default:
		return fmt.Errorf("unknown record kind %q", recordsKind)
	}
}

func writeJSON[T any](w io.Writer, recs []T) error {
	enc := json.NewEncoder(w)
	for _, r := range recs {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
