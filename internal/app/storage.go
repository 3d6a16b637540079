package app

import (
	"context"
	"encoding/json"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
)

// Keys persisted in the local key/value store.
const (
	KeyQuestions = "quiz_questions"
	KeyQuizID    = "quiz_id"
	KeyResults   = "collected_results"
)

// KeyValueStore abstracts where state is persisted (memory, sqlite, Redis, Postgres).
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// LocalStorage is a best-effort view over a KeyValueStore: failures are logged and
// swallowed so the in-memory state stays authoritative for the current session.
type LocalStorage struct {
	kv     KeyValueStore
	logger zerolog.Logger
}

func NewLocalStorage(kv KeyValueStore, logger zerolog.Logger) *LocalStorage {
	return &LocalStorage{kv: kv, logger: logger}
}

// LoadJSON decodes the value stored under key into v and reports whether it did.
func (s *LocalStorage) LoadJSON(ctx context.Context, key string, v any) bool {
	raw, ok := s.LoadString(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("discarding unreadable stored value")
		return false
	}
	return true
}

func (s *LocalStorage) LoadString(ctx context.Context, key string) (string, bool) {
	if s == nil || s.kv == nil {
		return "", false
	}
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("storage read failed")
		return "", false
	}
	return raw, ok && raw != ""
}

// Save writes every entry, JSON-encoding non-string values.
func (s *LocalStorage) Save(ctx context.Context, entries map[string]any) {
	if s == nil || s.kv == nil {
		return
	}
	var result *multierror.Error
	for key, v := range entries {
		raw, ok := v.(string)
		if !ok {
			data, err := json.Marshal(v)
			if err != nil {
				result = multierror.Append(result, err)
				continue
			}
			raw = string(data)
		}
		if err := s.kv.Set(ctx, key, raw); err != nil {
			result = multierror.Append(result, err)
		}
	}
	s.report("storage write failed", result)
}

func (s *LocalStorage) Remove(ctx context.Context, keys ...string) {
	if s == nil || s.kv == nil {
		return
	}
	var result *multierror.Error
	for _, key := range keys {
		if err := s.kv.Delete(ctx, key); err != nil {
			result = multierror.Append(result, err)
		}
	}
	s.report("storage delete failed", result)
}

func (s *LocalStorage) report(msg string, result *multierror.Error) {
	if err := result.ErrorOrNil(); err != nil {
		s.logger.Warn().Err(err).Msg(msg)
	}
}
