// Package redis implementa el almacén de sesiones sobre Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/marketplace-backoffice/internal/domain/entity"
	"github.com/jhoicas/marketplace-backoffice/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionStore)(nil)

const keyPrefix = "session:"

// NewClient crea el cliente desde REDIS_URL y valida la conexión al arrancar.
func NewClient(ctx context.Context, redisURL string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: url inválida: %w", err)
	}
	rdb := goredis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return rdb, nil
}

// SessionStore sesiones opacas con expiración nativa de Redis (SET ... EX).
type SessionStore struct {
	rdb *goredis.Client
}

// NewSessionStore construye el almacén.
func NewSessionStore(rdb *goredis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

type sessionRecord struct {
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Create guarda la sesión; la clave expira sola en ExpiresAt.
func (s *SessionStore) Create(ctx context.Context, session *entity.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("redis: sesión ya expirada")
	}
	payload, err := json.Marshal(sessionRecord{UserID: session.UserID, ExpiresAt: session.ExpiresAt})
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, keyPrefix+session.ID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis: guardar sesión: %w", err)
	}
	return nil
}

// FindByID devuelve nil, nil si la sesión no existe o ya expiró.
func (s *SessionStore) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	raw, err := s.rdb.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis: leer sesión: %w", err)
	}
	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("redis: sesión corrupta: %w", err)
	}
	return &entity.Session{ID: id, UserID: rec.UserID, ExpiresAt: rec.ExpiresAt}, nil
}

// Delete elimina la sesión; borrar una inexistente no es error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis: borrar sesión: %w", err)
	}
	return nil
}
