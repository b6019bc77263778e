package errors

// ErrorReporter 接收被处理的错误，通常由日志系统实现
type ErrorReporter func(appErr *AppError)

// DefaultErrorHandler 默认错误处理器实现
type DefaultErrorHandler struct {
	reporter ErrorReporter
}

// SetReporter 设置错误上报函数
func (h *DefaultErrorHandler) SetReporter(reporter ErrorReporter) {
	h.reporter = reporter
}

// HandleError 处理错误
func (h *DefaultErrorHandler) HandleError(err error) {
	if err == nil {
		return
	}

	appErr, ok := asAppError(err)
	if !ok {
		// 如果不是AppError，包装一下
		appErr = WrapError(ErrCodeInternalErr, "未知错误", err)
	}

	if h.reporter != nil {
		h.reporter(appErr)
	}
}

// GetUserFriendlyMessage 获取用户友好的错误消息
func (h *DefaultErrorHandler) GetUserFriendlyMessage(err error) string {
	if err == nil {
		return ""
	}

	appErr, ok := asAppError(err)
	if !ok {
		return "发生未知错误"
	}

	switch appErr.Code {
	// 系统错误
	case ErrCodeSystemError, ErrCodeInternalErr:
		return "系统错误，请联系技术支持"
	case ErrCodeInitializationFailed:
		return "应用程序初始化失败，请检查配置"
	case ErrCodeInvalidParam:
		return "参数无效，请检查输入"

	// 配置错误
	case ErrCodeConfigNotFound, ErrCodeConfigInvalid, ErrCodeConfigLoadFailed, ErrCodeConfigParseFailed:
		return "配置文件错误，请检查配置文件"

	// 注册表错误
	case ErrCodeHandleSpaceExhausted:
		return "序列句柄已耗尽，进程无法继续创建序列"

	// 命令与场景错误
	case ErrCodeInvalidCommand:
		return "命令格式无效，输入 help 查看可用命令"
	case ErrCodeScenarioLoadFailed:
		return "场景文件无法读取或解析，请检查文件格式"
	case ErrCodeScenarioFailed:
		return "场景校验未通过，请查看失败步骤"

	// 服务错误
	case ErrCodeMCPServeFailed:
		return "MCP服务运行失败，请检查标准输入输出连接"
	case ErrCodeStatsFailed:
		return "统计信息采集失败"

	default:
		return appErr.Message
	}
}

// 默认错误处理器实例
var DefaultHandler = &DefaultErrorHandler{}

// HandleError 处理错误
func HandleError(err error) {
	DefaultHandler.HandleError(err)
}

// GetUserFriendlyMessage 获取用户友好的错误消息
func GetUserFriendlyMessage(err error) string {
	return DefaultHandler.GetUserFriendlyMessage(err)
}
