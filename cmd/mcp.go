package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"strdeque/internal/config"
	"strdeque/internal/mcpserver"
	"strdeque/internal/strdeque"
)

// mcpCmd 通过标准输入输出提供 MCP 服务
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "启动MCP服务",
	Long: `以 Model Context Protocol 服务器的方式运行，每个注册表操作对应一个工具。
服务使用标准输入输出通信，日志和诊断写到标准错误。`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg := config.GetConfig()
		srv := mcpserver.New(strdeque.Default(), cfg.MCP.Name, cfg.MCP.Version)
		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
