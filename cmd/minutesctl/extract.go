package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/johnquangdev/meeting-minutes/internal/usecase/minutes"
)

const dateFlagLayout = "2006-01-02"

var (
	extractFormat      string
	extractDate        string
	extractDiagnostics bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract structured minutes from model output",
	Long: `Parses text written in the summary template (MEETING_TITLE:, DATE:,
DURATION:, PARTICIPANTS:, KEY_POINTS:, DECISIONS:, ACTION_ITEMS:,
NEXT_STEPS:) and prints the structured result.
Reads stdin when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "json", "output format (json|yaml)")
	extractCmd.Flags().StringVar(&extractDate, "date", "", "date used when the text has no DATE line (YYYY-MM-DD, default today)")
	extractCmd.Flags().BoolVar(&extractDiagnostics, "diagnostics", false, "report skipped lines on stderr")
}

func runExtract(cmd *cobra.Command, args []string) error {
	now := time.Now()
	if extractDate != "" {
		parsed, err := time.Parse(dateFlagLayout, extractDate)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", extractDate, err)
		}
		now = parsed
	}

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()
		in = f
	}

	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	summary, skipped := minutes.ExtractWithDiagnostics(string(raw), now)
	if extractDiagnostics {
		for _, s := range skipped {
			fmt.Fprintf(cmd.ErrOrStderr(), "line %d skipped (%s): %s\n", s.Number, s.Reason, s.Text)
		}
	}

	out := cmd.OutOrStdout()
	switch extractFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(summary)
	default:
		return fmt.Errorf("unsupported --format %q (want json or yaml)", extractFormat)
	}
}
