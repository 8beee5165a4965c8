package main

import (
	"fmt"
	"log"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/labelspy/labelspy/internal/preprocess"
)

func newPreprocessCmd() *cobra.Command {
	var (
		out      string
		scale    float64
		contrast float64
		invert   bool
	)

	cmd := &cobra.Command{
		Use:   "preprocess <image>",
		Short: "Binarize a label photograph for OCR and save the result",
		Long: `Preprocess upscales the image, boosts contrast, binarizes it with an
Otsu threshold and auto-inverts light-on-dark labels. The saved output is
what the local OCR engine would see with --enhance.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := openImage(args[0])
			if err != nil {
				return err
			}

			opts := preprocess.DefaultOptions()
			if cmd.Flags().Changed("scale") {
				opts.Scale = scale
			}
			if cmd.Flags().Changed("contrast") {
				opts.Contrast = contrast
			}
			if cmd.Flags().Changed("invert") {
				opts.ForceInvert = &invert
			}

			processed, stats := preprocess.ForOCR(img, opts)
			log.Printf("threshold=%d whiteRatio=%.3f inverted=%t",
				stats.Threshold, stats.WhiteRatio, stats.Inverted)

			if err := imaging.Save(processed, out); err != nil {
				return fmt.Errorf("failed to save %s: %w", out, err)
			}
			fmt.Println(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "preprocessed.png", "output image path")
	cmd.Flags().Float64Var(&scale, "scale", 0, "upscale factor (default 2.2)")
	cmd.Flags().Float64Var(&contrast, "contrast", 0, "contrast factor (default 1.35)")
	cmd.Flags().BoolVar(&invert, "invert", false, "force polarity instead of auto-detecting")

	return cmd
}
