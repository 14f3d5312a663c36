package worker

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
)

// vips 内存占用高，限制同时解码的图片数量
var (
	vipsSem     *semaphore.Weighted
	vipsSemOnce sync.Once
)

// AcquireImageSlot 获取一个图片处理槽位
func AcquireImageSlot(ctx context.Context) error {
	vipsSemOnce.Do(func() {
		n := int64(runtime.NumCPU())
		if n < 2 {
			n = 2
		}
		vipsSem = semaphore.NewWeighted(n)
	})
	return vipsSem.Acquire(ctx, 1)
}

// ReleaseImageSlot 释放图片处理槽位
func ReleaseImageSlot() {
	vipsSem.Release(1)
}
