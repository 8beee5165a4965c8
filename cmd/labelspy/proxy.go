package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/labelspy/labelspy/internal/proxy"
)

func newProxyCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "proxy",
		Short: "Serve the cloud OCR proxy",
		Long: `Proxy starts the HTTP service that forwards base64 images to the
Vision OCR API with server-side credentials. Set the API key via
LABELSPY_PROXY_API_KEY or the config file; clients never see it.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if cfg.Proxy.APIKey == "" {
				return fmt.Errorf("proxy API key is not configured (LABELSPY_PROXY_API_KEY)")
			}

			addr := cfg.Proxy.Listen
			if listen != "" {
				addr = listen
			}

			srv := &proxy.Server{
				APIKey:         cfg.Proxy.APIKey,
				VisionURL:      cfg.Proxy.VisionURL,
				AllowedOrigins: cfg.Proxy.AllowedOrigins,
				DataLogging:    cfg.Proxy.DataLogging,
			}

			log.Printf("OCR proxy listening on %s", addr)
			return http.ListenAndServe(addr, srv.Handler())
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")

	return cmd
}
