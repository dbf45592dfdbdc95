package serve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/karaoke/cmd/common"
	"github.com/gigurra/karaoke/cmd/serve/api"
	"github.com/gigurra/karaoke/cmd/serve/catalog"
	"github.com/gigurra/karaoke/cmd/serve/queue"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

type Params struct {
	Dir         string `pos:"true" optional:"true" help:"Directory with the frontend to serve." default:"static"`
	Port        int    `short:"p" env:"KARAOKE_PORT" help:"Port to listen on." default:"5001"`
	Host        string `env:"KARAOKE_HOST" help:"Host interface to bind to." default:"0.0.0.0"`
	Catalog     string `short:"c" env:"KARAOKE_CATALOG" optional:"true" help:"JSON file with the song catalog. The built-in catalog is used when empty." default:""`
	CorsOrigins string `env:"KARAOKE_CORS_ORIGINS" optional:"true" help:"Comma-separated allowed CORS origins. Empty allows all." default:""`
	SpaMode     bool   `help:"Serve index.html for unknown frontend paths." default:"false"`
	NoCache     bool   `help:"Disable browser caching of frontend files." default:"false"`
	Qr          bool   `help:"Print a QR code of the join URL." default:"false"`
	CopyUrl     bool   `help:"Copy the join URL to the clipboard." default:"false"`
	LogLevel    string `env:"KARAOKE_LOG_LEVEL" help:"Log level (debug, info, warn, error)." default:"info"`
	LogJson     bool   `env:"KARAOKE_LOG_JSON" help:"Log as JSON instead of text." default:"false"`

	ReadTimeoutMillis  int64 `help:"Maximum duration for reading the entire request, including the body (ms)." default:"5000"`
	WriteTimeoutMillis int64 `help:"Maximum duration before timing out writes of the response (ms)." default:"10000"`
	IdleTimeoutMillis  int64 `help:"Maximum amount of time to wait for the next request when keep-alives are enabled (ms)." default:"120000"`
	MaxHeaderBytes     int   `help:"Maximum number of bytes the server will read parsing the request header's keys and values." default:"1048576"` // 1MB
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "serve",
		Short:       "Run the karaoke server",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := common.SetupLogging(params.LogLevel, params.LogJson); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "serve: %v\n", err)
				os.Exit(1)
			}
			if err := Run(cmd.Context(), params); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "serve: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func Run(ctx context.Context, params *Params) error {
	cat, err := catalog.Load(params.Catalog)
	if err != nil {
		return err
	}

	staticDir, err := resolveStaticDir(params.Dir)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	handler, err := api.New(cat, queue.New(), api.Options{
		StaticDir:   staticDir,
		NoCache:     params.NoCache,
		SpaMode:     params.SpaMode,
		CORSOrigins: splitOrigins(params.CorsOrigins),
	})
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(params.Host, strconv.Itoa(params.Port))
	server := &http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    time.Duration(params.ReadTimeoutMillis) * time.Millisecond,
		WriteTimeout:   time.Duration(params.WriteTimeoutMillis) * time.Millisecond,
		IdleTimeout:    time.Duration(params.IdleTimeoutMillis) * time.Millisecond,
		MaxHeaderBytes: params.MaxHeaderBytes,
	}
	// Websocket connections are hijacked and not closed by Shutdown.
	server.RegisterOnShutdown(handler.Close)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	slog.Info("karaoke server starting",
		"addr", addr,
		"songs", cat.Len(),
		"static_dir", staticDir,
	)

	// Handle graceful shutdown
	serverErr := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	printBanner(ctx, os.Stdout, params)

	select {
	case <-ctx.Done():
		slog.Info("karaoke server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	case err := <-serverErr:
		return err
	}
}

// resolveStaticDir returns the absolute frontend directory, or "" when it does not
// exist so the API still comes up without a frontend.
func resolveStaticDir(dir string) (string, error) {
	if dir == "" {
		return "", nil
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve directory %s: %w", dir, err)
	}
	info, err := os.Stat(absDir)
	if os.IsNotExist(err) {
		slog.Warn("frontend directory does not exist, serving the API only", "dir", absDir)
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", absDir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", absDir)
	}
	return absDir, nil
}

func splitOrigins(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
