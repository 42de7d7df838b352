package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	vbmcp "github.com/deixis/vaultbridge/internal/mcp"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd(opts *globalOptions) *cobra.Command {
	var (
		httpAddr     string
		instructions bool
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if instructions {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), vbmcp.Instructions)
				return nil
			}

			e, err := opts.load(true)
			if err != nil {
				return err
			}
			defer func() { _ = e.close() }()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			server := vbmcp.NewServer(e.bridge, e.store)
			if httpAddr != "" {
				e.log.Info("listening", "addr", httpAddr)
				return serveHTTP(ctx, server, httpAddr)
			}
			return server.Run(ctx, &mcpsdk.StdioTransport{})
		},
	}
	cmd.Flags().StringVar(&httpAddr, "http", "", "serve streamable HTTP on address (e.g. :9090) instead of stdio")
	cmd.Flags().BoolVar(&instructions, "instructions", false, "print model instructions and exit")
	return cmd
}

func serveHTTP(ctx context.Context, server *mcpsdk.Server, addr string) error {
	handler := mcpsdk.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcpsdk.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
