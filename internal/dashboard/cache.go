package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL do snapshot em cache; o cálculo custa quatro idas à rede e tolera
// leve desatualização.
const cacheTTL = 60 * time.Second

// Cache guarda snapshots do dashboard no Redis. Instância nil desliga o
// cache e toda leitura recalcula.
type Cache struct {
	rdb *redis.Client
}

// NewCache conecta no Redis do endereço informado; addr vazio devolve nil.
func NewCache(addr string) *Cache {
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	return &Cache{rdb: rdb}
}

func chaveResumo(afiliadoID string) string {
	return "dashboard:" + afiliadoID
}

// Buscar devolve o snapshot em cache, se houver.
func (c *Cache) Buscar(ctx context.Context, afiliadoID string) (*Resumo, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, chaveResumo(afiliadoID)).Bytes()
	if err != nil {
		return nil, false
	}
	var r Resumo
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, false
	}
	return &r, true
}

// Guardar grava o snapshot com TTL de 60s. Falha de cache é só logável por
// quem chamou; nunca afeta a resposta.
func (c *Cache) Guardar(ctx context.Context, afiliadoID string, r *Resumo) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, chaveResumo(afiliadoID), data, cacheTTL).Err()
}
