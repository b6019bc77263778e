package errors

import "fmt"

// NewError 创建新的错误
func NewError(code, message string) *AppError {
	err := &AppError{
		Code:    code,
		Message: message,
	}
	return err.WithStack()
}

// NewErrorWithDetails 创建带详情的错误
func NewErrorWithDetails(code, message, details string) *AppError {
	err := &AppError{
		Code:    code,
		Message: message,
		Details: details,
	}
	return err.WithStack()
}

// WrapError 包装现有错误
func WrapError(code, message string, cause error) *AppError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}

	err := &AppError{
		Code:    code,
		Message: message,
		Details: details,
		Cause:   cause,
	}
	return err.WithStack()
}

// WrapErrorWithDetails 包装现有错误并添加详情
func WrapErrorWithDetails(code, message string, cause error, details string) *AppError {
	err := &AppError{
		Code:    code,
		Message: message,
		Details: details,
		Cause:   cause,
	}
	return err.WithStack()
}

// 预定义错误创建函数

// 配置错误
func NewConfigError(message string) *AppError {
	return NewError(ErrCodeConfigInvalid, message)
}

func WrapConfigError(message string, cause error) *AppError {
	return WrapError(ErrCodeConfigInvalid, message, cause)
}

// 命令错误
func NewCommandError(line int, message, details string) *AppError {
	if line > 0 {
		message = fmt.Sprintf("第 %d 行: %s", line, message)
	}
	return NewErrorWithDetails(ErrCodeInvalidCommand, message, details)
}

// 场景错误
func NewScenarioError(name string, failed int) *AppError {
	return NewErrorWithDetails(ErrCodeScenarioFailed, "场景校验失败",
		fmt.Sprintf("场景: %s, 失败步骤: %d", name, failed))
}

func WrapScenarioLoadError(path string, cause error) *AppError {
	return WrapErrorWithDetails(ErrCodeScenarioLoadFailed, "场景文件加载失败", cause,
		fmt.Sprintf("路径: %s, 原因: %v", path, cause))
}

// 注册表错误
func NewHandleSpaceExhaustedError(last uint64) *AppError {
	return NewErrorWithDetails(ErrCodeHandleSpaceExhausted, "句柄空间耗尽",
		fmt.Sprintf("最后分配的句柄: %d", last))
}
