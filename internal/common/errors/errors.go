package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// 错误代码常量
const (
	// 系统级错误
	ErrCodeSystemError          = "SYSTEM_ERROR"          // 系统错误
	ErrCodeInternalErr          = "INTERNAL_ERROR"        // 内部错误
	ErrCodeInitializationFailed = "INITIALIZATION_FAILED" // 初始化失败
	ErrCodeInvalidParam         = "INVALID_PARAM"         // 无效参数

	// 配置错误
	ErrCodeConfigNotFound    = "CONFIG_NOT_FOUND"    // 配置文件未找到
	ErrCodeConfigInvalid     = "CONFIG_INVALID"      // 配置文件无效
	ErrCodeConfigLoadFailed  = "CONFIG_LOAD_FAILED"  // 配置加载失败
	ErrCodeConfigParseFailed = "CONFIG_PARSE_FAILED" // 配置解析失败

	// 注册表错误
	ErrCodeHandleSpaceExhausted = "HANDLE_SPACE_EXHAUSTED" // 句柄空间耗尽

	// 命令与场景错误
	ErrCodeInvalidCommand     = "INVALID_COMMAND"      // 命令格式无效
	ErrCodeScenarioLoadFailed = "SCENARIO_LOAD_FAILED" // 场景文件加载失败
	ErrCodeScenarioFailed     = "SCENARIO_FAILED"      // 场景校验失败

	// 服务错误
	ErrCodeMCPServeFailed = "MCP_SERVE_FAILED" // MCP服务运行失败
	ErrCodeStatsFailed    = "STATS_FAILED"     // 统计信息采集失败
)

// AppError 应用错误结构
type AppError struct {
	Code    string `json:"code"`              // 错误代码
	Message string `json:"message"`           // 错误消息
	Details string `json:"details,omitempty"` // 错误详情
	Cause   error  `json:"-"`                 // 原始错误
	Stack   string `json:"stack,omitempty"`   // 错误堆栈
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 返回原始错误
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is 实现错误比较接口，代码相同即视为同一类错误
func (e *AppError) Is(target error) bool {
	if other, ok := target.(*AppError); ok {
		return e.Code == other.Code
	}
	return false
}

// WithDetails 添加错误详情
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// WithStack 添加堆栈信息
func (e *AppError) WithStack() *AppError {
	e.Stack = getStackTrace(3) // 跳过3层调用栈
	return e
}

// getStackTrace 获取调用堆栈
func getStackTrace(skip int) string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var stack strings.Builder
	for {
		frame, more := frames.Next()
		// 跳过runtime相关的调用栈
		if !strings.Contains(frame.File, "runtime/") {
			fmt.Fprintf(&stack, "%s:%d %s\n", frame.File, frame.Line, frame.Function)
		}
		if !more {
			break
		}
	}
	return stack.String()
}

// asAppError 沿错误链查找 AppError
func asAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsAppError 判断错误链中是否有 AppError
func IsAppError(err error) bool {
	_, ok := asAppError(err)
	return ok
}

// IsErrorCode 检查错误是否为指定类型
func IsErrorCode(err error, code string) bool {
	if appErr, ok := asAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

// GetErrorCode 获取错误代码
func GetErrorCode(err error) string {
	if appErr, ok := asAppError(err); ok {
		return appErr.Code
	}
	return ErrCodeInternalErr
}

// GetErrorDetails 获取错误详情
func GetErrorDetails(err error) string {
	if appErr, ok := asAppError(err); ok {
		return appErr.Details
	}
	return ""
}
