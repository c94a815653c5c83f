// messgen-dump 检查和生成 messgen 帧文件。
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"github.com/lk2023060901/messgen-go/application"
	"github.com/lk2023060901/messgen-go/pkg/log"
)

// 构建时注入。
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	app := application.New()

	rootCmd := &cobra.Command{
		Use:   "messgen-dump",
		Short: "Inspect and generate messgen frame files",
		Long: `messgen-dump walks files made of back-to-back messgen frames
(1 byte type id, 2 byte little-endian payload length, payload) and
prints every complete frame, decoding the demo schema types it knows.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Init(configPath); err != nil {
				return err
			}
			// 容器内按 CPU 配额设置 GOMAXPROCS，影响 inspect 的默认并发度
			if _, err := maxprocs.Set(maxprocs.Logger(log.S().Debugf)); err != nil {
				app.Logger().Warn("set GOMAXPROCS failed", zap.Error(err))
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = log.Sync()
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default $"+application.ConfigPathEnv+" or "+application.DefaultConfigPath+")")

	rootCmd.AddCommand(
		inspectCmd(app),
		demoCmd(app),
		versionCmd(),
	)
	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "messgen-dump %s (%s)\n", version, commit)
		},
	}
}
