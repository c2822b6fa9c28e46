package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go-recordshop/internal/client"
	"go-recordshop/internal/export"
	"go-recordshop/internal/model"
	"go-recordshop/internal/view"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) exportCmd() *cobra.Command {
	var search, sortBy, format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered, sorted records to a spreadsheet or PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.guard.Check(client.RouteExport)
			if err != nil {
				return err
			}

			write, ext, err := exporter(format)
			if err != nil {
				return err
			}
			records, err := a.loadView(sess, search, sortBy)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return export.ErrNothingToExport
			}

			if out == "" {
				out = fmt.Sprintf("records-%s.%s", time.Now().Format("20060102-150405"), ext)
			}
			if err := writeFile(out, func(w io.Writer) error {
				return write(w, records, view.DefaultPalette)
			}); err != nil {
				return err
			}

			a.log.Info("records exported", zap.String("file", out), zap.Int("rows", len(records)))
			cmd.Printf("Exported %d records to %s\n", len(records), out)
			return nil
		},
	}

	addViewFlags(cmd.Flags(), &search, &sortBy)
	cmd.Flags().StringVarP(&format, "format", "f", "xlsx", "xlsx or pdf")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default records-<timestamp>.<format>)")
	return cmd
}

type exportFunc func(io.Writer, []model.Record, []string) error

func exporter(format string) (exportFunc, string, error) {
	switch strings.ToLower(format) {
	case "xlsx", "excel":
		return export.WriteXLSX, "xlsx", nil
	case "pdf":
		return export.WritePDF, "pdf", nil
	default:
		return nil, "", fmt.Errorf("unknown export format %q (use xlsx or pdf)", format)
	}
}

// writeFile writes through a temp file in the target directory and renames it into place.
func writeFile(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".recordctl-export-*")
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
