package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"strdeque/internal/common/errors"
	"strdeque/internal/util"
)

// 全局配置实例
var Config *AppConfig

// 应用配置结构
type AppConfig struct {
	Logging     LoggingConfig     `toml:"logging"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Shell       ShellConfig       `toml:"shell"`
	MCP         MCPConfig         `toml:"mcp"`
}

// 日志配置
type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // json, text
	Output string `toml:"output"` // stdout, stderr, file
	File   string `toml:"file"`   // 日志文件路径
}

// 诊断配置
type DiagnosticsConfig struct {
	Enabled     bool   `toml:"enabled"`      // 是否报告注册表事件
	Sink        string `toml:"sink"`         // log, trace, both
	TracePretty bool   `toml:"trace_pretty"` // trace 输出是否缩进
}

// 交互界面配置
type ShellConfig struct {
	Prompt      string `toml:"prompt"`
	HistorySize int    `toml:"history_size"`
}

// MCP服务配置
type MCPConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// 诊断输出类型
const (
	SinkLog   = "log"
	SinkTrace = "trace"
	SinkBoth  = "both"
)

// 默认配置内容
const defaultConfig = `# strdeque 配置文件

[logging]
level = "info"
format = "text"
output = "stderr"
file = ""

[diagnostics]
# 为 true 时注册表的每次操作都会报告结构化事件（需要 debug 日志级别才能看到 log 输出）
enabled = false
sink = "log"
trace_pretty = false

[shell]
prompt = "strdeque> "
history_size = 500

[mcp]
name = "strdeque"
version = "1.0.0"
`

// Default 返回默认配置
func Default() *AppConfig {
	var cfg AppConfig
	if _, err := toml.Decode(defaultConfig, &cfg); err != nil {
		panic(fmt.Sprintf("默认配置无效: %v", err))
	}
	return &cfg
}

// 加载配置文件
func LoadConfig(configPath string) error {
	// 如果没有指定配置文件路径，使用默认路径
	if configPath == "" {
		configPath = getDefaultConfigPath()
	}

	// 检查配置文件是否存在
	if !util.FileExists(configPath) {
		if err := createDefaultConfig(configPath); err != nil {
			return errors.WrapError(errors.ErrCodeConfigLoadFailed, "创建默认配置文件失败", err)
		}
		util.Infow("已创建默认配置文件", map[string]any{"path": configPath})
	}

	// 以默认值为基础解析，文件中缺失的字段保持默认
	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return errors.WrapError(errors.ErrCodeConfigParseFailed, "解析配置文件失败", err)
	}

	// 使用环境变量覆盖配置
	if err := overrideWithEnv(config); err != nil {
		return err
	}

	// 验证配置
	if err := validateConfig(config); err != nil {
		return err
	}

	// 设置全局配置
	Config = config
	return nil
}

// 获取默认配置文件路径
func getDefaultConfigPath() string {
	// 优先使用当前目录下的配置文件
	if util.FileExists("strdeque.toml") {
		return "strdeque.toml"
	}

	// 使用用户主目录下的配置文件
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "strdeque.toml"
	}

	return filepath.Join(homeDir, ".strdeque", "config.toml")
}

// 创建默认配置文件
func createDefaultConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(configPath, []byte(defaultConfig), 0644)
}

// 使用环境变量覆盖配置
func overrideWithEnv(config *AppConfig) error {
	if level := os.Getenv("STRDEQUE_LOG_LEVEL"); level != "" {
		config.Logging.Level = strings.ToLower(level)
	}

	if enabled := os.Getenv("STRDEQUE_DIAGNOSTICS"); enabled != "" {
		v, err := strconv.ParseBool(enabled)
		if err != nil {
			return errors.NewErrorWithDetails(errors.ErrCodeConfigInvalid, "环境变量 STRDEQUE_DIAGNOSTICS 无效", enabled)
		}
		config.Diagnostics.Enabled = v
	}

	if sink := os.Getenv("STRDEQUE_DIAG_SINK"); sink != "" {
		config.Diagnostics.Sink = strings.ToLower(sink)
	}
	return nil
}

// 验证配置
func validateConfig(config *AppConfig) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, config.Logging.Level) {
		return errors.NewErrorWithDetails(errors.ErrCodeConfigInvalid, "无效的日志级别", config.Logging.Level)
	}

	if !slices.Contains([]string{"text", "json"}, config.Logging.Format) {
		return errors.NewErrorWithDetails(errors.ErrCodeConfigInvalid, "无效的日志格式", config.Logging.Format)
	}

	if config.Logging.Output == "file" && config.Logging.File == "" {
		return errors.NewConfigError("日志输出为文件时必须指定文件路径")
	}

	if !slices.Contains([]string{SinkLog, SinkTrace, SinkBoth}, config.Diagnostics.Sink) {
		return errors.NewErrorWithDetails(errors.ErrCodeConfigInvalid, "无效的诊断输出类型", config.Diagnostics.Sink)
	}

	if config.Shell.HistorySize <= 0 {
		return errors.NewErrorWithDetails(errors.ErrCodeConfigInvalid, "history_size 必须大于 0",
			strconv.Itoa(config.Shell.HistorySize))
	}

	return nil
}

// 获取当前配置，未加载时返回默认配置
func GetConfig() *AppConfig {
	if Config == nil {
		return Default()
	}
	return Config
}
