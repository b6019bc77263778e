package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"strdeque/internal/common/errors"
	"strdeque/internal/scenario"
	"strdeque/internal/strdeque"
)

// checkCmd 校验 YAML 场景
var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "校验 YAML 场景文件",
	Long: `每个场景在独立的注册表上执行，逐步比较命令输出和期望值。
任一场景失败时以非零状态退出。`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return checkScenarios(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func checkScenarios(cmd *cobra.Command, paths []string) error {
	out := cmd.OutOrStdout()
	total, failed := 0, 0

	for _, path := range paths {
		scenarios, err := scenario.Load(path)
		if err != nil {
			return err
		}
		for _, sc := range scenarios {
			res := sc.Run(strdeque.WithSink(diagSink))
			scenario.Report(out, res)
			total++
			if !res.Passed() {
				failed++
			}
		}
	}

	fmt.Fprintf(out, "\n%d scenarios, %d passed, %d failed\n", total, total-failed, failed)
	if failed > 0 {
		return errors.NewErrorWithDetails(errors.ErrCodeScenarioFailed, "场景校验失败",
			fmt.Sprintf("%d/%d 个场景未通过", failed, total))
	}
	return nil
}
