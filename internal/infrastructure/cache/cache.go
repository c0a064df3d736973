package cache

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache é o cache em memória com expiração usado para o catálogo de DRE/UGEL/escolas
type Cache struct {
	items *gocache.Cache
	ttl   time.Duration
}

// New cria o cache com o TTL padrão; itens expirados são limpos a cada minuto
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Cache{
		items: gocache.New(ttl, time.Minute),
		ttl:   ttl,
	}
}

// Set adiciona um item com o TTL padrão
func (c *Cache) Set(key string, value interface{}) {
	c.items.SetDefault(key, value)
}

// SetWithTTL adiciona um item com duração específica
func (c *Cache) SetWithTTL(key string, value interface{}, duration time.Duration) {
	c.items.Set(key, value, duration)
}

// Get busca um item; o bool indica se foi encontrado e não expirou
func (c *Cache) Get(key string) (interface{}, bool) {
	return c.items.Get(key)
}

// Delete remove um item
func (c *Cache) Delete(key string) {
	c.items.Delete(key)
}

// DeletePrefix remove todos os itens cuja chave começa com prefix
func (c *Cache) DeletePrefix(prefix string) {
	for key := range c.items.Items() {
		if strings.HasPrefix(key, prefix) {
			c.items.Delete(key)
		}
	}
}

// Clear remove todos os itens
func (c *Cache) Clear() {
	c.items.Flush()
}

// Remember devolve o valor em cache ou executa load e guarda o resultado.
// Erros de load não são guardados.
func Remember[T any](c *Cache, key string, load func() (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}
	value, err := load()
	if err != nil {
		return value, err
	}
	c.Set(key, value)
	return value, nil
}
