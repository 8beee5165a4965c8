// Command labelspy reads food label photographs, recognizes their text and
// runs the ingredient heuristics over it: E-code extraction, allergen and
// hidden-sugar detection, nutrient traffic lights and an overall verdict.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/labelspy/labelspy/internal/config"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	cfgPath string
	cfg     config.Config
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	root := &cobra.Command{
		Use:           "labelspy",
		Short:         "Food label OCR and ingredient heuristics",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			var err error
			cfg, err = config.Load(cfgPath)
			return err
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default ./config.yaml)")

	root.AddCommand(
		newAnalyzeCmd(),
		newOCRCmd(),
		newPreprocessCmd(),
		newProxyCmd(),
		newHistoryCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("labelspy %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
		},
	}
}
