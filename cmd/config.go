package cmd

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"strdeque/internal/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "配置管理",
	Long:  "查看 strdeque 的配置文件和生效的设置",
}

// configShowCmd represents the show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "显示当前配置",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig(cmd)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
}

// showConfig 显示配置信息，包括环境变量和 --verbose 的覆盖结果
func showConfig(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	cfg := config.GetConfig()

	fmt.Fprintln(out, "当前配置:")
	fmt.Fprintf(out, "  配置文件: %s\n", configPath)
	fmt.Fprintf(out, "  日志级别: %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  诊断: %t (%s)\n", cfg.Diagnostics.Enabled, cfg.Diagnostics.Sink)

	if verbose {
		fmt.Fprintln(out)
		return toml.NewEncoder(out).Encode(cfg)
	}
	return nil
}
