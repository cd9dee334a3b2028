package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jhoicas/gridaura-api/internal/application/ports"
	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var _ ports.MaterialCache = (*RedisMaterialCache)(nil)

const materialKeyPrefix = "gridaura:material:"

// RedisMaterialCache caché del catálogo en Redis (JSON por material, con TTL).
type RedisMaterialCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisMaterialCache construye el cliente. No falla si Redis no responde al arrancar:
// las lecturas se degradan a miss.
func NewRedisMaterialCache(addr, password string, db int, ttl time.Duration) *RedisMaterialCache {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("redis: ping fallido, la caché de materiales operará en modo miss")
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisMaterialCache{client: client, ttl: ttl}
}

// Get lee el material; cualquier error es un miss.
func (c *RedisMaterialCache) Get(ctx context.Context, id string) (*entity.Material, bool) {
	data, err := c.client.Get(ctx, materialKeyPrefix+id).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("material_id", id).Msg("redis: error leyendo material")
		}
		return nil, false
	}
	var m entity.Material
	if err := json.Unmarshal(data, &m); err != nil {
		log.Warn().Err(err).Str("material_id", id).Msg("redis: material corrupto en caché")
		c.Invalidate(ctx, id)
		return nil, false
	}
	return &m, true
}

// Set guarda el material con el TTL configurado.
func (c *RedisMaterialCache) Set(ctx context.Context, m *entity.Material) {
	data, err := json.Marshal(m)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, materialKeyPrefix+m.ID, data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("material_id", m.ID).Msg("redis: error guardando material")
	}
}

// Invalidate borra la entrada del material.
func (c *RedisMaterialCache) Invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, materialKeyPrefix+id).Err(); err != nil {
		log.Warn().Err(err).Str("material_id", id).Msg("redis: error invalidando material")
	}
}

// Close libera las conexiones.
func (c *RedisMaterialCache) Close() error {
	return c.client.Close()
}
