package cmd

import (
	"github.com/spf13/cobra"

	"strdeque/internal/config"
	"strdeque/internal/diag"
	"strdeque/internal/shell"
	"strdeque/internal/strdeque"
)

// shellCmd 打开交互界面
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "打开交互界面",
	Long:  "在终端界面中逐条输入命令。输入 help 查看命令，exit 或 esc 退出。",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.GetConfig()
		rec := diag.NewRecorder(64)
		reg := strdeque.New(strdeque.WithSink(diag.Multi(rec, diagSink)))

		return shell.Run(cmd.Context(), shell.Options{
			Registry:    reg,
			Prompt:      cfg.Shell.Prompt,
			HistorySize: cfg.Shell.HistorySize,
			Recorder:    rec,
		})
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
