package core

import (
	"fmt"
	"sort"
	"sync"

	"PaperDigest/internal/platform"
)

// Provider 平台注册项
// Name 平台的唯一标识，例如 "arxiv"。
// New 构造具体平台实例的工厂函数。
// DefaultConfig 返回该平台可用的默认配置。
type Provider struct {
	Name string

	New func(cfg platform.Config) (platform.Platform, error)

	DefaultConfig func() platform.Config
}

var (
	regMu    sync.RWMutex
	registry = map[string]Provider{}
)

func Register(p Provider) error {
	if p.Name == "" {
		return fmt.Errorf("provider name cannot be empty")
	}
	if p.New == nil || p.DefaultConfig == nil {
		return fmt.Errorf("provider %s is incomplete", p.Name)
	}

	regMu.Lock()
	defer regMu.Unlock()
	if _, exists := registry[p.Name]; exists {
		return fmt.Errorf("provider %s already registered", p.Name)
	}
	registry[p.Name] = p
	return nil
}

func MustRegister(p Provider) {
	if err := Register(p); err != nil {
		panic(err)
	}
}

func Get(name string) (Provider, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	p, ok := registry[name]
	return p, ok
}

// List 已注册的平台名（排序后）
func List() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
