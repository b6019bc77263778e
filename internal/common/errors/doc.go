// Package errors 提供统一的错误处理系统
//
// 这个包实现了一个简化的错误处理框架，包括：
// - 统一的错误代码定义
// - 基本的错误创建方法
// - 简化的错误处理器
//
// 注册表本身从不返回错误，这里的错误只出现在外围：配置加载、命令解析、场景校验，
// 以及句柄空间耗尽时的致命 panic。
//
// 基本用法：
//
//  1. 创建错误：
//     err := errors.NewError(errors.ErrCodeConfigNotFound, "配置文件未找到")
//     wrappedErr := errors.WrapError(errors.ErrCodeConfigInvalid, "配置文件无效", originalErr)
//
//  2. 使用预定义错误创建函数：
//     cmdErr := errors.NewCommandError(3, "未知命令", "frobnicate")
//     scenarioErr := errors.NewScenarioError("basic", 2)
//
//  3. 处理错误：
//     errors.HandleError(err)
//     userMessage := errors.GetUserFriendlyMessage(err)
//
//  4. 检查错误类型：
//     if errors.IsErrorCode(err, errors.ErrCodeInvalidCommand) {
//     // 处理命令错误
//     }
package errors
