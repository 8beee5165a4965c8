package main

import (
	"fmt"
	"image"
	"log"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/labelspy/labelspy/internal/config"
	"github.com/labelspy/labelspy/internal/ocr"
)

func newOCRCmd() *cobra.Command {
	var (
		engine    string
		languages []string
		enhance   bool
		endpoint  string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "ocr <image>",
		Short: "Recognize text from a label photograph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := openImage(args[0])
			if err != nil {
				return err
			}

			enh := cfg.OCR.Enhance
			if cmd.Flags().Changed("enhance") {
				enh = enhance
			}
			opts := recognizeOptions(cfg.OCR, engine, languages, enh)
			if verbose {
				opts.Progress = func(fraction float64, status string) {
					log.Printf("ocr %3.0f%% %s", fraction*100, status)
				}
			}

			adapter := newAdapter(cfg.OCR, endpoint)
			defer adapter.Close()

			text, err := adapter.Recognize(cmd.Context(), img, opts)
			if err != nil {
				return err
			}
			fmt.Println(text)
			return nil
		},
	}

	cmd.Flags().StringVar(&engine, "engine", "", `recognition engine: "local" or "cloud" (default from config)`)
	cmd.Flags().StringSliceVar(&languages, "lang", nil, "tesseract language codes (default from config)")
	cmd.Flags().BoolVar(&enhance, "enhance", true, "preprocess the image and keep the best-scoring variant")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "cloud OCR proxy URL (overrides config)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log recognition progress")

	return cmd
}

// openImage loads and EXIF-orients an image file. Phone photos routinely
// carry orientation tags that would otherwise garble recognition.
func openImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	return img, nil
}

// recognizeOptions merges config defaults with command-line overrides.
func recognizeOptions(c config.OCR, engine string, languages []string, enhance bool) ocr.Options {
	if engine == "" {
		engine = c.Engine
	}
	if len(languages) == 0 {
		languages = c.Languages
	}
	return ocr.Options{
		Languages: languages,
		Engine:    ocr.Engine(engine),
		Enhance:   enhance,
	}
}

// newAdapter builds the recognition adapter, wiring the cloud engine when
// an endpoint is known.
func newAdapter(c config.OCR, endpoint string) *ocr.Adapter {
	if endpoint == "" {
		endpoint = c.Endpoint
	}
	var remote *ocr.RemoteEngine
	if endpoint != "" {
		remote = ocr.NewRemoteEngine(endpoint)
		if c.Model != "" {
			remote.Model = c.Model
		}
		if c.Timeout > 0 {
			remote.Client.Timeout = c.Timeout
		}
	}
	return ocr.NewAdapter(remote)
}
