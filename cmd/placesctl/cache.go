package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// snapshotInfo - описание снимка кеша для вывода
type snapshotInfo struct {
	Present    bool      `json:"present"`
	Key        string    `json:"key,omitempty"`
	Provider   string    `json:"provider,omitempty"`
	RadiusM    int       `json:"radius_m,omitempty"`
	Categories []string  `json:"categories,omitempty"`
	Places     int       `json:"places"`
	FetchedAt  time.Time `json:"fetched_at,omitempty"`
	Age        string    `json:"age,omitempty"`
	Fresh      bool      `json:"fresh"`
}

func newCacheCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the places snapshot",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := opts.open()
			if err != nil {
				return err
			}
			defer deps.Close()

			entry, err := deps.Snapshots.Inspect(cmd.Context())
			if err != nil {
				return err
			}

			info := snapshotInfo{}
			if entry != nil {
				now := time.Now()
				info = snapshotInfo{
					Present:    true,
					Key:        entry.Key.String(),
					Provider:   string(entry.Key.Provider),
					RadiusM:    entry.Key.RadiusMeters,
					Categories: entry.Key.Categories.Strings(),
					Places:     len(entry.Places),
					FetchedAt:  entry.FetchedAt,
					Age:        entry.Age(now).Truncate(time.Second).String(),
					Fresh:      entry.Fresh(now, deps.Snapshots.TTL()),
				}
			}

			return render(cmd.OutOrStdout(), opts.output, info, func(w *tabwriter.Writer) {
				if !info.Present {
					fmt.Fprintln(w, "no snapshot stored")
					return
				}
				fmt.Fprintf(w, "KEY\t%s\n", info.Key)
				fmt.Fprintf(w, "PLACES\t%d\n", info.Places)
				fmt.Fprintf(w, "FETCHED\t%s\n", info.FetchedAt.Format(time.RFC3339))
				fmt.Fprintf(w, "AGE\t%s\n", info.Age)
				fmt.Fprintf(w, "FRESH\t%t\n", info.Fresh)
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the stored snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := opts.open()
			if err != nil {
				return err
			}
			defer deps.Close()

			if err := deps.Snapshots.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Snapshot cleared.")
			return nil
		},
	}

	cmd.AddCommand(showCmd, clearCmd)
	return cmd
}
