// Package safe_close 提供多组件协同的优雅关闭
package safe_close

import (
	"sync"
)

// SafeClose 协调多个后台组件的关闭流程
// 每个组件通过 Attach 注册，收到关闭信号后完成清理并调用 done
type SafeClose struct {
	mu          sync.Mutex
	closeOnce   sync.Once
	closeSignal chan struct{}
	wg          sync.WaitGroup
	err         error
}

// NewSafeClose 创建 SafeClose 实例
func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach 注册一个后台组件
// f 在独立 goroutine 中运行，必须在退出前调用 done，
// 并在 closeSignal 关闭后尽快结束
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	go f(func() { s.wg.Done() }, s.closeSignal)
}

// SendCloseSignal 发送关闭信号，首个非空错误会被保留
func (s *SafeClose) SendCloseSignal(err error) {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		close(s.closeSignal)
	})
}

// WaitClosed 阻塞等待所有组件退出，返回触发关闭的错误
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// CloseSignal 获取关闭信号通道
func (s *SafeClose) CloseSignal() <-chan struct{} {
	return s.closeSignal
}
