// Package stats 汇总注册表规模和进程内存占用
package stats

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/shirou/gopsutil/v4/process"

	"strdeque/internal/strdeque"
	"strdeque/internal/util"
)

// Snapshot 是某一时刻的统计信息
type Snapshot struct {
	LiveDeques    int    `json:"live_deques"`    // 当前存在的序列数，不含空序列
	HandlesIssued uint64 `json:"handles_issued"` // 已分配的句柄数
	Elements      int    `json:"elements"`       // 所有序列的元素总数
	LargestHandle uint64 `json:"largest_handle"` // 元素最多的序列
	LargestSize   int    `json:"largest_size"`
	RSSBytes      uint64 `json:"rss_bytes"` // 进程常驻内存，采集失败时为 0
}

// MemoryReader 读取进程常驻内存
type MemoryReader func(ctx context.Context) (uint64, error)

// ProcessRSS 使用 gopsutil 读取当前进程的常驻内存
func ProcessRSS(ctx context.Context) (uint64, error) {
	p, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		return 0, err
	}
	info, err := p.MemoryInfoWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return info.RSS, nil
}

// Collect 汇总注册表统计信息；mem 为 nil 时使用 ProcessRSS
func Collect(ctx context.Context, reg *strdeque.Registry, mem MemoryReader) Snapshot {
	if mem == nil {
		mem = ProcessRSS
	}

	snap := Snapshot{
		LiveDeques:    reg.Len() - 1,
		HandlesIssued: reg.Created(),
	}
	for _, h := range reg.Handles() {
		seq, ok := reg.Snapshot(h)
		if !ok {
			continue
		}
		snap.Elements += len(seq)
		if len(seq) > snap.LargestSize {
			snap.LargestSize = len(seq)
			snap.LargestHandle = uint64(h)
		}
	}

	rss, err := mem(ctx)
	if err != nil {
		util.Warnw("读取进程内存失败", map[string]any{"error": err})
	} else {
		snap.RSSBytes = rss
	}
	return snap
}

// Write 把统计信息写成对齐的文本
func Write(w io.Writer, s Snapshot) {
	fmt.Fprintf(w, "live deques:     %d\n", s.LiveDeques)
	fmt.Fprintf(w, "handles issued:  %d\n", s.HandlesIssued)
	fmt.Fprintf(w, "elements:        %d\n", s.Elements)
	if s.LargestSize > 0 {
		fmt.Fprintf(w, "largest deque:   %d (%d elements)\n", s.LargestHandle, s.LargestSize)
	}
	fmt.Fprintf(w, "process rss:     %s\n", formatBytes(s.RSSBytes))
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
