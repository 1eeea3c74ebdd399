package main

import (
	"fmt"
	"io"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/vfg2006/rsa-auditor-api/internal/domain"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/extracting"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/optimizing"
	"github.com/vfg2006/rsa-auditor-api/internal/usecases/verticals"
	"github.com/vfg2006/rsa-auditor-api/pkg/templating"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const asOfLayout = "2006-01-02"

type auditOptions struct {
	input    string
	asOf     string
	vertical string
	workers  int
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "auditctl",
		Short:         "Audit responsive search ads offline",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newAuditCmd(), newRemediateCmd(), newVerticalsCmd())
	return root
}

func newAuditCmd() *cobra.Command {
	opts := auditOptions{}
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit a batch of ads and print the result as JSON",
		Example: `  auditctl audit --input batch.json
  auditctl audit --input - --as-of 2026-10-01 < batch.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req domain.BatchRequest
			if err := readJSON(cmd.InOrStdin(), opts.input, &req); err != nil {
				return err
			}
			if err := applyAsOf(&req.AsOf, opts.asOf); err != nil {
				return err
			}
			if opts.vertical != "" {
				req.Vertical = opts.vertical
			}

			result, err := newOptimizer(opts.workers).AuditBatch(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "batch JSON file, or - for stdin")
	cmd.Flags().StringVar(&opts.asOf, "as-of", "", "reference date (YYYY-MM-DD) for freshness rules")
	cmd.Flags().StringVar(&opts.vertical, "vertical", "", "override the batch vertical")
	cmd.Flags().IntVar(&opts.workers, "workers", optimizing.DefaultWorkers, "ads audited in parallel")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// newRemediateCmd só simula; a execução exige o servidor com executor configurado
func newRemediateCmd() *cobra.Command {
	opts := auditOptions{}
	cmd := &cobra.Command{
		Use:   "remediate",
		Short: "Dry-run the remediation of one finding and print the change set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req domain.RemediationRequest
			if err := readJSON(cmd.InOrStdin(), opts.input, &req); err != nil {
				return err
			}
			if err := applyAsOf(&req.AsOf, opts.asOf); err != nil {
				return err
			}
			if req.Mode == domain.ModeExecute {
				fmt.Fprintln(cmd.ErrOrStderr(), "auditctl: execute mode is not available offline, running a dry run")
			}
			req.Mode = domain.ModeDryRun

			resp, err := newOptimizer(optimizing.DefaultWorkers).Remediate(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "remediation JSON file, or - for stdin")
	cmd.Flags().StringVar(&opts.asOf, "as-of", "", "reference date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newVerticalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verticals",
		Short: "List supported verticals and their benchmarks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := verticals.NewRegistry()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-15s %8s %8s\n", "VERTICAL", "CTR", "CVR")
			for _, name := range registry.Verticals() {
				rs, err := registry.Lookup(string(name))
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-15s %7.2f%% %7.2f%%\n", rs.Vertical, rs.CTRBenchmark*100, rs.CVRBenchmark*100)
			}
			return nil
		},
	}
}

// newOptimizer monta o pipeline offline: sem LLM, sem ledger de cooldown, sem executor
func newOptimizer(workers int) optimizing.Optimizer {
	pipeline := optimizing.NewPipeline(extracting.MustLoadCatalog(), templating.NewRenderer(), nil, 0)
	return optimizing.NewService(pipeline, nil, nil, optimizing.Options{Workers: workers})
}

func readJSON(stdin io.Reader, path string, dst any) error {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("erro ao abrir %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(dst); err != nil {
		return fmt.Errorf("erro ao decodificar %s: %w", path, err)
	}
	return nil
}

func applyAsOf(dst **time.Time, value string) error {
	if value == "" {
		return nil
	}
	t, err := time.Parse(asOfLayout, value)
	if err != nil {
		return fmt.Errorf("--as-of inválido %q: use YYYY-MM-DD", value)
	}
	*dst = &t
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
