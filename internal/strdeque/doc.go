// Package strdeque 实现进程级的字符串序列注册表
//
// 注册表把数字句柄映射到可变的字符串序列，提供创建、删除、查询、插入、移除、清空和比较操作。
// 句柄 0 是保留句柄，永久指向不可修改的空序列。
//
// 基本用法：
//
//  1. 使用独立注册表：
//     reg := strdeque.New()
//     h := reg.Create()
//     reg.InsertAt(h, 0, "a")
//     v, ok := reg.GetAt(h, 0)
//
//  2. 使用进程级默认注册表：
//     h := strdeque.NewDeque()
//     strdeque.InsertAt(h, 0, "a")
//     strdeque.Comp(h, strdeque.EmptyHandle())
//
//  3. 接入诊断输出：
//     reg := strdeque.New(strdeque.WithSink(mySink))
//
// 所有操作都不返回错误：失败的调用是静默的空操作或返回哨兵值，
// 只有诊断通道（Sink）能区分"成功"与"什么也没做"。
package strdeque
