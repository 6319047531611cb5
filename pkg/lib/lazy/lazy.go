// Package lazy 提供延迟初始化句柄
//
// Value 在首次被访问时执行一次构造，并缓存构造结果（包括错误）。
// 适用于需要推迟到运行时才初始化的服务（例如带网络能力的客户端）。
//
// 使用示例:
//
//	client := lazy.New(func() (*http.Client, error) {
//	    return newClient()
//	})
//
//	c, err := client.Get() // 首次调用时构造
package lazy

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// ErrInitPanic 构造函数发生 panic
var ErrInitPanic = errors.New("lazy: init panicked")

// Value 延迟初始化句柄
//
// 并发安全：多个 goroutine 同时调用 Get 时，构造函数只会执行一次，
// 其余调用方阻塞等待并获得同一结果。
type Value[T any] struct {
	once sync.Once
	init func() (T, error)
	done atomic.Bool

	val T
	err error
}

// New 创建延迟初始化句柄
func New[T any](init func() (T, error)) *Value[T] {
	return &Value[T]{init: init}
}

// Get 返回构造结果，首次调用时执行构造
func (v *Value[T]) Get() (T, error) {
	v.once.Do(func() {
		// panic 同样视为构造完成，以错误形式缓存
		defer func() {
			if r := recover(); r != nil {
				var zero T
				v.val, v.err = zero, fmt.Errorf("%w: %v", ErrInitPanic, r)
			}
			// 构造函数只使用一次，释放其捕获的引用
			v.init = nil
			v.done.Store(true)
		}()
		if v.init != nil {
			v.val, v.err = v.init()
		}
	})
	return v.val, v.err
}

// Initialized 报告构造是否已经执行
func (v *Value[T]) Initialized() bool {
	return v.done.Load()
}
