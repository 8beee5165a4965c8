package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/labelspy/labelspy/internal/additives"
	"github.com/labelspy/labelspy/internal/analyze"
	"github.com/labelspy/labelspy/internal/history"
	"github.com/labelspy/labelspy/internal/textutil"
)

// analysisReport is the JSON shape of `analyze --json`: the heuristic
// result plus the display palette, so UI consumers do not re-derive
// colors from bands.
type analysisReport struct {
	*analyze.Result

	Colors struct {
		Sugar   string `json:"sugar"`
		Fat     string `json:"fat"`
		Salt    string `json:"salt"`
		Verdict string `json:"verdict"`
	} `json:"colors"`

	Additives []additives.Info `json:"additives,omitempty"`
}

func newAnalyzeCmd() *cobra.Command {
	var (
		textFile string
		engine   string
		endpoint string
		asJSON   bool
		noSave   bool

		sugar, fat, salt string
	)

	cmd := &cobra.Command{
		Use:   "analyze [image]",
		Short: "Run the full label analysis pipeline",
		Long: `Analyze recognizes text from a label photograph (or takes prepared
text via --text) and runs the ingredient heuristics: composition block
extraction, E-code detection, allergen and hidden-sugar patterns,
nutrient traffic lights and the overall verdict.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(cmd, args, textFile, engine, endpoint)
			if err != nil {
				return err
			}

			result := analyze.Analyze(text)
			if n, changed, err := nutrientOverrides(result.Nutrients, sugar, fat, salt); err != nil {
				return err
			} else if changed {
				result = result.WithNutrients(n)
			}

			db := loadAdditives(cfg.AdditivesPath)

			if !noSave {
				saveHistory(result)
			}

			if asJSON {
				return writeReport(cmd.OutOrStdout(), result, db)
			}
			printHuman(cmd.OutOrStdout(), result, db)
			return nil
		},
	}

	cmd.Flags().StringVar(&textFile, "text", "", `read recognized text from a file instead of OCR ("-" for stdin)`)
	cmd.Flags().StringVar(&engine, "engine", "", `recognition engine: "local" or "cloud" (default from config)`)
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "cloud OCR proxy URL (overrides config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the full result as JSON")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not record this analysis in history")
	cmd.Flags().StringVar(&sugar, "sugar", "", "override sugar g/100g (e.g. 10.5)")
	cmd.Flags().StringVar(&fat, "fat", "", "override fat g/100g")
	cmd.Flags().StringVar(&salt, "salt", "", "override salt g/100g")

	return cmd
}

// inputText resolves the text to analyze: --text wins, otherwise the image
// argument goes through OCR.
func inputText(cmd *cobra.Command, args []string, textFile, engine, endpoint string) (string, error) {
	if textFile != "" {
		if textFile == "-" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return "", fmt.Errorf("failed to read stdin: %w", err)
			}
			return string(data), nil
		}
		data, err := os.ReadFile(textFile)
		if err != nil {
			return "", fmt.Errorf("failed to read text file: %w", err)
		}
		return string(data), nil
	}

	if len(args) == 0 {
		return "", fmt.Errorf("an image argument or --text is required")
	}

	img, err := openImage(args[0])
	if err != nil {
		return "", err
	}

	adapter := newAdapter(cfg.OCR, endpoint)
	defer adapter.Close()

	return adapter.Recognize(cmd.Context(), img, recognizeOptions(cfg.OCR, engine, nil, cfg.OCR.Enhance))
}

// nutrientOverrides applies command-line nutrient values over the
// auto-extracted ones. Comma decimals are accepted ("10,5").
func nutrientOverrides(n analyze.Nutrients, sugar, fat, salt string) (analyze.Nutrients, bool, error) {
	changed := false
	for _, f := range []struct {
		name  string
		raw   string
		field **float64
	}{
		{"sugar", sugar, &n.Sugar},
		{"fat", fat, &n.Fat},
		{"salt", salt, &n.Salt},
	} {
		if f.raw == "" {
			continue
		}
		v, ok := textutil.ParseDecimal(f.raw)
		if !ok {
			return n, false, fmt.Errorf("invalid --%s value %q", f.name, f.raw)
		}
		*f.field = &v
		changed = true
	}
	return n, changed, nil
}

// loadAdditives reads the E-code reference; a load failure degrades to an
// empty database with a warning rather than aborting the analysis.
func loadAdditives(path string) *additives.DB {
	db, err := additives.Load(path)
	if path != "" && err != nil {
		log.Printf("Warning: additive database unavailable: %v", err)
	}
	return db
}

func saveHistory(result *analyze.Result) {
	store := history.NewStore(cfg.HistoryPath)
	if _, err := store.Append(history.Entry{
		VerdictTitle: result.Verdict.Title,
		Summary:      result.Summary(),
		RawText:      result.RawText,
		Codes:        result.AdditiveCodes,
		Allergens:    result.Allergens,
		HiddenSugars: result.HiddenSugars,
	}); err != nil {
		log.Printf("Warning: failed to save history: %v", err)
	}
}

func writeReport(w io.Writer, result *analyze.Result, db *additives.DB) error {
	report := analysisReport{Result: result}
	report.Colors.Sugar = analyze.BandColor(result.Bands.Sugar)
	report.Colors.Fat = analyze.BandColor(result.Bands.Fat)
	report.Colors.Salt = analyze.BandColor(result.Bands.Salt)
	report.Colors.Verdict = analyze.SeverityColor(result.Verdict.Severity)
	for _, code := range result.AdditiveCodes {
		info, _ := db.Lookup(code)
		report.Additives = append(report.Additives, info)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func printHuman(w io.Writer, result *analyze.Result, db *additives.DB) {
	fmt.Fprintf(w, "%s\n", result.Verdict.Title)
	for _, r := range result.Verdict.Reasons {
		fmt.Fprintf(w, "  - %s\n", r)
	}
	if len(result.Verdict.Reasons) == 0 {
		fmt.Fprintf(w, "  %s\n", result.Verdict.Body)
	}

	fmt.Fprintf(w, "\nСводка: %s\n", result.Summary())

	if result.Composition != "" {
		fmt.Fprintf(w, "\nСостав: %s\n", result.Composition)
	}

	if len(result.AdditiveCodes) > 0 {
		fmt.Fprintf(w, "\nE-коды:\n")
		for _, code := range result.AdditiveCodes {
			info, known := db.Lookup(code)
			if known {
				fmt.Fprintf(w, "  %s  %s (%s)\n", info.Code, info.Name, info.Category)
			} else {
				fmt.Fprintf(w, "  %s\n", code)
			}
		}
	}

	fmt.Fprintf(w, "\nСветофор:\n")
	for _, row := range []struct {
		name  string
		value *float64
		band  analyze.Band
	}{
		{"сахар", result.Nutrients.Sugar, result.Bands.Sugar},
		{"жиры", result.Nutrients.Fat, result.Bands.Fat},
		{"соль", result.Nutrients.Salt, result.Bands.Salt},
	} {
		if row.value != nil {
			fmt.Fprintf(w, "  %-6s %5.1f г/100г  [%s]\n", row.name, *row.value, row.band)
		} else {
			fmt.Fprintf(w, "  %-6s     ?          [%s]\n", row.name, row.band)
		}
	}

	if len(result.Allergens) > 0 {
		fmt.Fprintf(w, "\nАллергены: %s\n", strings.Join(result.Allergens, ", "))
	}
	if len(result.HiddenSugars) > 0 {
		fmt.Fprintf(w, "Скрытые сахара: %s\n", strings.Join(result.HiddenSugars, ", "))
	}
	if len(result.Enhancers) > 0 {
		fmt.Fprintf(w, "Усилители вкуса: %s\n", strings.Join(result.Enhancers, ", "))
	}
}
