// cmd/catalogctl/main.go
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"hw-quote/internal/catalog"
	"hw-quote/internal/config"
	"hw-quote/internal/domain"
	"hw-quote/internal/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	svc   *catalog.Service
	close func()
}

func rootCmd() *cobra.Command {
	a := &app{close: func() {}}

	cmd := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Inspect, export and import the hardware price catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.MustLoad()
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

			store, closeStore, err := storage.Open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			a.svc = catalog.NewService(store)
			a.close = closeStore
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	cmd.AddCommand(showCmd(a), exportCmd(a), importCmd(a))
	return cmd
}

func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print a summary of the stored catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.svc.Get(cmd.Context())
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), cat)
		},
	}
}

func exportCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.svc.Get(cmd.Context())
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				return encodeCatalog(cmd.OutOrStdout(), cat)
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := encodeCatalog(f, cat); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func importCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Replace the stored catalog with the contents of a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			cat, err := decodeCatalog(data)
			if err != nil {
				return err
			}
			if err := a.svc.Replace(cmd.Context(), cat); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ imported %d categories, %d discounts\n", len(cat.Components), len(cat.Discounts))
			return nil
		},
	}
}

func printSummary(w io.Writer, cat domain.Catalog) error {
	keys := make([]string, 0, len(cat.Components))
	for k := range cat.Components {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		label := cat.Categories[k]
		if label == "" {
			label = k
		}
		n := 0
		for _, c := range cat.Components[k] {
			if c.ID != domain.PlaceholderID(k) {
				n++
			}
		}
		if _, err := fmt.Fprintf(w, "%-20s %-24s %d items\n", k, label, n); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "discounts: %d\n", len(cat.Discounts))
	return err
}
