package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"strdeque/internal/common/errors"
	"strdeque/internal/script"
	"strdeque/internal/strdeque"
	"strdeque/internal/util"
)

var (
	runStrict bool
	runEcho   bool
)

// runCmd 执行命令脚本
var runCmd = &cobra.Command{
	Use:   "run [FILE]",
	Short: "执行命令脚本",
	Long: `逐行执行命令脚本，每条命令输出一行结果。
FILE 省略或为 "-" 时从标准输入读取。格式错误的命令输出 error 后继续执行，
--strict 模式下遇到第一条错误即退出。输入 "strdeque run" 后键入 help 查看命令。`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "-"
		if len(args) == 1 {
			path = args[0]
		}
		return runScript(cmd, path)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runStrict, "strict", false, "遇到第一条格式错误的命令即退出")
	runCmd.Flags().BoolVar(&runEcho, "echo", false, "输出结果前回显命令")
}

// openInput 打开脚本文件，"-" 表示标准输入
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapErrorWithDetails(errors.ErrCodeInvalidParam, "无法打开脚本文件", err, path)
	}
	return f, nil
}

// runScript 在默认注册表上执行脚本
func runScript(cmd *cobra.Command, path string) error {
	in, err := openInput(cmd, path)
	if err != nil {
		return err
	}
	defer in.Close()

	sess := script.NewSession(strdeque.Default())
	sum, err := script.Run(sess, in, cmd.OutOrStdout(), script.RunOptions{Strict: runStrict, Echo: runEcho})
	util.Debugw("脚本执行完成", map[string]any{
		"file":     path,
		"executed": sum.Executed,
		"failed":   sum.Failed,
	})
	return err
}
