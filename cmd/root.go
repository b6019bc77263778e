package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"strdeque/internal/common/errors"
	"strdeque/internal/config"
	"strdeque/internal/diag"
	"strdeque/internal/strdeque"
	"strdeque/internal/util"
)

var (
	// configPath 是配置文件的路径
	configPath string
	// verbose 强制 debug 日志并打开诊断
	verbose bool
	// diagSink 是根据配置构建的诊断输出，未启用时为 strdeque.Discard
	diagSink strdeque.Sink = strdeque.Discard
	// tracerProvider 在启用 trace 诊断时非空，退出前需要关闭
	tracerProvider *sdktrace.TracerProvider
)

// rootCmd 代表没有调用子命令时的基础命令
var rootCmd = &cobra.Command{
	Use:   "strdeque",
	Short: "字符串序列注册表",
	Long: `strdeque 维护一个进程级注册表，把数字句柄映射到可变的字符串序列。
句柄 0 永远指向不可修改的空序列。

可以执行命令脚本、校验 YAML 场景、打开交互界面，或通过 MCP 暴露全部操作。`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeApp()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return shutdownApp(cmd.Context())
	},
}

// Execute 将所有子命令添加到根命令并执行。
// 由 main.main() 调用，只需要调用一次。
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "命令执行失败: %v\n", err)
		if errors.IsAppError(err) {
			fmt.Fprintln(os.Stderr, errors.GetUserFriendlyMessage(err))
		}
		os.Exit(1)
	}
}

func init() {
	// 全局标志
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "配置文件路径 (默认: $STRDEQUE_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "详细输出，启用 debug 日志和诊断事件")
}

// initializeApp 初始化应用
func initializeApp() error {
	// 1. 处理配置文件路径
	if configPath == "" {
		configPath = os.Getenv("STRDEQUE_CONFIG")
	}

	// 2. 加载配置文件
	if err := config.LoadConfig(configPath); err != nil {
		return errors.WrapError(errors.ErrCodeConfigInvalid, "配置加载失败", err)
	}
	cfg := config.GetConfig()

	// 3. 根据verbose标志调整日志级别
	logLevel := cfg.Logging.Level
	if verbose {
		logLevel = "debug"
		cfg.Diagnostics.Enabled = true
	}

	// 4. 初始化日志系统
	if err := util.InitLogger(logLevel, cfg.Logging.Format, cfg.Logging.Output, cfg.Logging.File); err != nil {
		return errors.WrapError(errors.ErrCodeConfigInvalid, "日志系统初始化失败", err)
	}
	util.ReportErrorsToLog()

	util.Debugw("配置详情", map[string]any{
		"log_level":   logLevel,
		"config_path": configPath,
		"diagnostics": cfg.Diagnostics.Enabled,
		"sink":        cfg.Diagnostics.Sink,
	})

	// 5. 构建诊断输出并安装到默认注册表
	if err := initializeDiagnostics(cfg.Diagnostics); err != nil {
		return errors.WrapError(errors.ErrCodeInitializationFailed, "诊断输出初始化失败", err)
	}
	return nil
}

// initializeDiagnostics 根据配置选择 log、trace 或两者
func initializeDiagnostics(cfg config.DiagnosticsConfig) error {
	if !cfg.Enabled {
		diagSink = strdeque.Discard
		strdeque.SetSink(nil)
		return nil
	}

	var sinks []strdeque.Sink
	if cfg.Sink == config.SinkLog || cfg.Sink == config.SinkBoth {
		sinks = append(sinks, diag.NewLogSink(util.DefaultLogger))
	}
	if cfg.Sink == config.SinkTrace || cfg.Sink == config.SinkBoth {
		// 标准输出留给脚本结果和 MCP 协议
		tp, err := diag.NewStdoutProvider(os.Stderr, cfg.TracePretty)
		if err != nil {
			return err
		}
		tracerProvider = tp
		sinks = append(sinks, diag.NewTraceSink(tp))
	}

	diagSink = diag.Multi(sinks...)
	strdeque.SetSink(diagSink)
	return nil
}

// shutdownApp 刷新并关闭 trace 输出
func shutdownApp(ctx context.Context) error {
	if tracerProvider == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := tracerProvider.Shutdown(ctx); err != nil {
		return errors.WrapError(errors.ErrCodeSystemError, "关闭 trace 输出失败", err)
	}
	tracerProvider = nil
	return nil
}
