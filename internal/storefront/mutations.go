package storefront

import "sync"

// 变更按 (kind, id) 串行执行：同一件商品的加购/改量/删除不会交错，
// 不同商品的变更互不阻塞。每个键维护一个序号，提交本地状态前
// 校验序号是否仍是最新，被后续变更超过的完成动作直接丢弃。

type mutationKey struct {
	kind string
	id   int64
}

type mutationPipeline struct {
	mu    sync.Mutex
	locks map[mutationKey]*sync.Mutex
	seq   map[mutationKey]uint64
}

func newMutationPipeline() *mutationPipeline {
	return &mutationPipeline{
		locks: make(map[mutationKey]*sync.Mutex),
		seq:   make(map[mutationKey]uint64),
	}
}

func (p *mutationPipeline) lockFor(key mutationKey) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.locks[key]
	if !ok {
		l = &sync.Mutex{}
		p.locks[key] = l
	}
	return l
}

func (p *mutationPipeline) nextSeq(key mutationKey) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq[key]++
	return p.seq[key]
}

func (p *mutationPipeline) currentSeq(key mutationKey) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.seq[key]
}

// run 串行执行一次变更。do 是网络调用，commit 是成功后的本地状态更新，
// 只在本次变更仍是该键的最新一次时执行。
func (p *mutationPipeline) run(key mutationKey, do func() error, commit func()) error {
	l := p.lockFor(key)
	l.Lock()
	defer l.Unlock()

	seq := p.nextSeq(key)
	if err := do(); err != nil {
		return err
	}
	if commit != nil && p.currentSeq(key) == seq {
		commit()
	}
	return nil
}

// Loading 进行中的变更标记，界面据此置灰对应控件。
// ID 字段记录正在操作的那一行，0 表示空闲，只禁用该行而不是整个界面。
type Loading struct {
	AddingItem        bool
	UpdatingProductID int64
	RemovingItemID    int64
	ClearingCart      bool
	TogglingProductID int64
}

type loadingState struct {
	mu    sync.RWMutex
	flags Loading
}

func (s *loadingState) set(f func(*Loading)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(&s.flags)
}

func (s *loadingState) snapshot() Loading {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flags
}
