// Package global chứa các biến toàn cục dùng chung cho toàn bộ ứng dụng.
package global

import (
	"fmt"
	"sync"
)

// Registry là một thread-safe generic registry.
// Dùng để quản lý các singleton instances (collections, databases) theo tên.
type Registry[T any] struct {
	items map[string]T
	mu    sync.RWMutex
}

// NewRegistry tạo và trả về một registry mới
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		items: make(map[string]T),
	}
}

// Register đăng ký một item mới vào registry.
// Nếu item với name đã tồn tại, nó sẽ bị ghi đè.
func (r *Registry[T]) Register(name string, item T) (isNew bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.items[name]
	r.items[name] = item
	return !exists
}

// Get lấy item theo tên
func (r *Registry[T]) Get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[name]
	return item, exists
}

// MustGet lấy item theo tên, panic nếu không tồn tại.
// Chỉ dùng trong giai đoạn khởi tạo ứng dụng.
func (r *Registry[T]) MustGet(name string) T {
	item, exists := r.Get(name)
	if !exists {
		panic(fmt.Sprintf("registry: item %q not registered", name))
	}
	return item
}

// Names trả về danh sách tên các items đã đăng ký
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	return names
}
