package util

import (
	"strdeque/internal/common/errors"
)

// 错误代码常量 - 指向通用错误处理系统中的错误代码
const (
	ErrCodeConfigNotFound       = errors.ErrCodeConfigNotFound       // 配置文件未找到
	ErrCodeConfigInvalid        = errors.ErrCodeConfigInvalid        // 配置文件无效
	ErrCodeConfigLoadFailed     = errors.ErrCodeConfigLoadFailed     // 配置加载失败
	ErrCodeConfigParseFailed    = errors.ErrCodeConfigParseFailed    // 配置解析失败
	ErrCodeInvalidParam         = errors.ErrCodeInvalidParam         // 无效参数
	ErrCodeInternalErr          = errors.ErrCodeInternalErr          // 内部错误
	ErrCodeInitializationFailed = errors.ErrCodeInitializationFailed // 初始化失败
	ErrCodeHandleSpaceExhausted = errors.ErrCodeHandleSpaceExhausted // 句柄空间耗尽
	ErrCodeInvalidCommand       = errors.ErrCodeInvalidCommand       // 命令格式无效
	ErrCodeScenarioLoadFailed   = errors.ErrCodeScenarioLoadFailed   // 场景文件加载失败
	ErrCodeScenarioFailed       = errors.ErrCodeScenarioFailed       // 场景校验失败
)

// AppError 应用错误结构 - 使用通用错误处理系统中的AppError
type AppError = errors.AppError

// 创建新的应用错误
func NewError(code, message string) *AppError {
	return errors.NewError(code, message)
}

// 创建带详情的应用错误
func NewErrorWithDetail(code, message, details string) *AppError {
	return errors.NewErrorWithDetails(code, message, details)
}

// 包装现有错误
func WrapError(code, message string, cause error) *AppError {
	return errors.WrapError(code, message, cause)
}

// 检查错误是否为指定类型
func IsErrorCode(err error, code string) bool {
	return errors.IsErrorCode(err, code)
}

// 获取错误代码
func GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}

// 获取错误详情
func GetErrorDetails(err error) string {
	return errors.GetErrorDetails(err)
}

// 获取用户友好的错误消息
func GetUserFriendlyMessage(err error) string {
	return errors.GetUserFriendlyMessage(err)
}

// ReportErrorsToLog 让通用错误处理器把错误写入默认日志器
func ReportErrorsToLog() {
	errors.DefaultHandler.SetReporter(func(appErr *AppError) {
		LogError(appErr, appErr.Message)
	})
}
