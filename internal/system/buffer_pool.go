package system

import (
	"sync"

	"github.com/ivlev/morphblur/internal/pixel"
)

// FloatPool переиспользует буферы []pixel.RGBFloat одинаковой длины,
// чтобы снимки кадров не нагружали Garbage Collector.
type FloatPool struct {
	pools map[int]*sync.Pool
	mu    sync.RWMutex
}

var globalPool = &FloatPool{
	pools: make(map[int]*sync.Pool),
}

// GetFloatBuffer возвращает буфер длины n из пула или создает новый.
// Содержимое буфера не обнуляется.
func GetFloatBuffer(n int) []pixel.RGBFloat {
	return globalPool.Get(n)
}

// PutFloatBuffer возвращает буфер в пул для повторного использования.
func PutFloatBuffer(buf []pixel.RGBFloat) {
	globalPool.Put(buf)
}

func (p *FloatPool) Get(n int) []pixel.RGBFloat {
	p.mu.RLock()
	pool, exists := p.pools[n]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		// Double check
		pool, exists = p.pools[n]
		if !exists {
			pool = &sync.Pool{
				New: func() interface{} {
					buf := make([]pixel.RGBFloat, n)
					return &buf
				},
			}
			p.pools[n] = pool
		}
		p.mu.Unlock()
	}

	return *pool.Get().(*[]pixel.RGBFloat)
}

func (p *FloatPool) Put(buf []pixel.RGBFloat) {
	if buf == nil {
		return
	}
	p.mu.RLock()
	pool, exists := p.pools[len(buf)]
	p.mu.RUnlock()

	if exists {
		pool.Put(&buf)
	}
}
