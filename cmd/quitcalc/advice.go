package main

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/quitcalc/internal/calculation"
)

var adviceCmd = &cobra.Command{
	Use:   "advice [input-file]",
	Short: "Suggest improvements to a quit scenario",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")
		if err := runAdvice(cmd.OutOrStdout(), args[0], format, readScenarioFlags(cmd)); err != nil {
			log.Fatal(err)
		}
	},
}

func runAdvice(w io.Writer, inputFile, format string, sf scenarioFlags) error {
	input, err := loadInput(inputFile, sf)
	if err != nil {
		return err
	}
	items, err := newEngine(input.Policy, sf.debug).Advise(&input.Profile, input.Scenario)
	if err != nil {
		return err
	}

	switch strings.ToLower(format) {
	case "json":
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal advice: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "text", "":
		var b strings.Builder
		for _, item := range items {
			fmt.Fprintf(&b, "%s %s\n", adviceMarker(item.Kind), item.Title)
			if item.Description != "" {
				fmt.Fprintf(&b, "    %s\n", item.Description)
			}
		}
		_, err := io.WriteString(w, b.String())
		return err
	default:
		return fmt.Errorf("unknown output format: %s (valid: text, json)", format)
	}
}

func adviceMarker(kind calculation.AdviceKind) string {
	switch kind {
	case calculation.AdviceSuccess:
		return "[ok]"
	case calculation.AdviceWarning:
		return "[!!]"
	default:
		return "[i] "
	}
}

func init() {
	adviceCmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
	addScenarioFlags(adviceCmd)
}
