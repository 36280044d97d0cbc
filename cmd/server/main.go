package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	rbac "github.com/ludico-app/ludico/internal/auth/rbac"
	jwt "github.com/ludico-app/ludico/internal/auth/token"
	common "github.com/ludico-app/ludico/internal/cli/common"
	"github.com/ludico-app/ludico/internal/db"
	httpserver "github.com/ludico-app/ludico/internal/server/http"
)

func main() {
	var cfgFile string
	root := &cobra.Command{
		Use:   "ludico-server",
		Short: "Ludico event management server",
		RunE: func(cmd *cobra.Command, args []string) error {
			// default logger first so config loading itself is logged
			common.SetupLoggerWithFile("info", "console", "", 0, 0, 0, false)
			viper.SetEnvPrefix("LUDICO")
			viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
			viper.AutomaticEnv()
			if cfgFile != "" {
				viper.SetConfigFile(cfgFile)
				if err := viper.ReadInConfig(); err != nil {
					slog.Warn("read config", "error", err)
				} else {
					slog.Info("config loaded", "file", viper.ConfigFileUsed())
				}
			}
			// Extract `server` section if present (YAML friendly)
			v := viper.GetViper()
			if sub := v.Sub("server"); sub != nil {
				v = sub
			}
			common.MergeLogSection(v)
			common.SetupLoggerWithFile(
				v.GetString("log.level"),
				v.GetString("log.format"),
				v.GetString("log.file"),
				v.GetInt("log.max_size"),
				v.GetInt("log.max_backups"),
				v.GetInt("log.max_age"),
				v.GetBool("log.compress"),
			)

			httpAddr := v.GetString("http_addr")
			if httpAddr == "" {
				httpAddr = ":8080"
			}
			jwtSecret := v.GetString("jwt_secret")
			if jwtSecret == "" {
				slog.Warn("jwt_secret not set; using an insecure development default")
				jwtSecret = "dev-insecure-secret"
			}

			gdb, err := db.Open(v.GetString("db.dsn"))
			if err != nil {
				slog.Error("open database", "error", err)
				os.Exit(1)
			}

			policy, err := rbac.Load(v.GetString("rbac_model"), v.GetString("rbac_policy"))
			if err != nil {
				slog.Error("load rbac policy", "error", err)
				os.Exit(1)
			}

			srv, err := httpserver.NewServer(gdb, policy, jwt.NewManager(jwtSecret))
			if err != nil {
				slog.Error("init server", "error", err)
				os.Exit(1)
			}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe(httpAddr) }()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			select {
			case err := <-errCh:
				if err != nil {
					slog.Error("http server", "error", err)
					os.Exit(1)
				}
			case sig := <-sigCh:
				slog.Info("shutting down", "signal", sig.String())
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := srv.Shutdown(ctx); err != nil {
					slog.Error("shutdown", "error", err)
					os.Exit(1)
				}
			}
			return nil
		},
	}
	root.Flags().StringVarP(&cfgFile, "config", "c", "", "config file (yaml)")
	if err := root.Execute(); err != nil {
		slog.Error("run", "error", err)
		os.Exit(1)
	}
}
