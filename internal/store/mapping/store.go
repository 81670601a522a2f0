package mapping

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/tometh/soulvoice/internal/model/emotion"
)

// Store 持有当前生效的情绪映射。读多写少：分类调用并发读取整份快照，
// 只有映射刷新器这一个写入方，替换是整体原子的，读取方不会观察到
// 半新半旧的映射。
type Store struct {
	mu      sync.RWMutex
	current emotion.Mapping
	persist Persistence
}

// NewStore 创建映射仓库，初始内容为内置默认映射。persist 可为 nil，
// 此时快照不做持久化。
func NewStore(persist Persistence) *Store {
	return &Store{
		current: emotion.Default(),
		persist: persist,
	}
}

// Get 返回当前映射的深拷贝。永不阻塞等待网络，永不为空。
func (s *Store) Get() emotion.Mapping {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// TrySet 校验候选映射并在通过时整体替换当前映射，返回是否发生了替换。
// 替换成功后尝试持久化快照；持久化失败只记日志，不影响分类可用性。
func (s *Store) TrySet(candidate emotion.Mapping) bool {
	if err := candidate.Validate(); err != nil {
		log.Printf("[mapping] candidate rejected: %v", err)
		return false
	}

	snapshot := candidate.Clone()

	s.mu.Lock()
	s.current = snapshot
	s.mu.Unlock()

	s.persistSnapshot(snapshot)
	return true
}

// LoadPersisted 读取上一次保存的有效快照，没有或损坏时返回错误。
func (s *Store) LoadPersisted() (*emotion.Mapping, error) {
	if s.persist == nil {
		return nil, ErrSnapshotMissing
	}

	data, err := s.persist.Load()
	if err != nil {
		return nil, err
	}

	var m emotion.Mapping
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Bootstrap 在进程启动时安装持久化快照（存在且有效时），否则保持默认映射。
// 无论哪条路径，分类能力都立即可用。
func (s *Store) Bootstrap() {
	persisted, err := s.LoadPersisted()
	if err != nil {
		log.Printf("[mapping] no usable persisted snapshot, using built-in default: %v", err)
		return
	}

	s.mu.Lock()
	s.current = *persisted
	s.mu.Unlock()
	log.Println("[mapping] installed persisted mapping snapshot")
}

func (s *Store) persistSnapshot(snapshot emotion.Mapping) {
	if s.persist == nil {
		return
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		log.Printf("[mapping] failed to marshal snapshot: %v", err)
		return
	}
	if err := s.persist.Save(data); err != nil {
		log.Printf("[mapping] failed to persist snapshot: %v", err)
	}
}
