package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"strdeque/internal/script"
	"strdeque/internal/stats"
	"strdeque/internal/strdeque"
)

// statsCmd 输出注册表统计信息
var statsCmd = &cobra.Command{
	Use:   "stats [FILE]",
	Short: "执行脚本后输出统计信息",
	Long:  "可选地先执行 FILE 中的命令（\"-\" 表示标准输入，脚本输出被丢弃），然后输出默认注册表的统计信息和进程内存。",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := strdeque.Default()
		if len(args) == 1 {
			in, err := openInput(cmd, args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			if _, err := script.Run(script.NewSession(reg), in, io.Discard, script.RunOptions{}); err != nil {
				return err
			}
		}

		stats.Write(cmd.OutOrStdout(), stats.Collect(cmd.Context(), reg, nil))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
