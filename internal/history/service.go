package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cloud-ru/fincalc-go/internal/identity"
	"github.com/cloud-ru/fincalc-go/internal/metrics"
)

// Service сохраняет, читает и очищает списки расчётов пользователя.
// Запись выполняется чтением всего списка и перезаписью: при одновременных
// сохранениях побеждает последний.
type Service struct {
	store Store
	now   func() time.Time
	newID func() uuid.UUID
}

// NewService создаёт сервис истории поверх хранилища
func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.New,
	}
}

// Save добавляет расчёт в конец списка пользователя и возвращает сохранённую запись
func (s *Service) Save(ctx context.Context, who *identity.Identity, rec SavedCalculation) (*SavedCalculation, error) {
	const op = "save"

	if who == nil || who.UID == "" {
		s.record(op, rec.Family, "unauthenticated")
		return nil, identity.ErrUnauthenticated
	}
	if err := rec.Validate(); err != nil {
		s.record(op, rec.Family, "invalid")
		return nil, err
	}

	key := rec.Family.Key(who.UID)

	list, err := s.load(ctx, key)
	if err != nil {
		s.record(op, rec.Family, "error")
		return nil, err
	}

	rec.ID = s.newID()
	rec.CreatedAt = s.now()
	list = append(list, rec)

	data, err := json.Marshal(list)
	if err != nil {
		s.record(op, rec.Family, "error")
		return nil, fmt.Errorf("failed to encode history: %w", err)
	}

	if err := s.store.Set(ctx, key, data); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to write history")
		s.record(op, rec.Family, "error")
		return nil, fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
	}

	s.record(op, rec.Family, "success")
	return &rec, nil
}

// List возвращает расчёты пользователя в порядке сохранения
func (s *Service) List(ctx context.Context, who *identity.Identity, family Family) ([]SavedCalculation, error) {
	const op = "list"

	if who == nil || who.UID == "" {
		s.record(op, family, "unauthenticated")
		return nil, identity.ErrUnauthenticated
	}

	list, err := s.load(ctx, family.Key(who.UID))
	if err != nil {
		s.record(op, family, "error")
		return nil, err
	}

	s.record(op, family, "success")
	return list, nil
}

// Clear удаляет все расчёты семейства у пользователя
func (s *Service) Clear(ctx context.Context, who *identity.Identity, family Family) error {
	const op = "clear"

	if who == nil || who.UID == "" {
		s.record(op, family, "unauthenticated")
		return identity.ErrUnauthenticated
	}

	key := family.Key(who.UID)
	if err := s.store.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to clear history")
		s.record(op, family, "error")
		return fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
	}

	s.record(op, family, "success")
	return nil
}

func (s *Service) load(ctx context.Context, key string) ([]SavedCalculation, error) {
	data, ok, err := s.store.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to read history")
		return nil, fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
	}
	if !ok || len(data) == 0 {
		return []SavedCalculation{}, nil
	}

	var list []SavedCalculation
	if err := json.Unmarshal(data, &list); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Corrupt history value")
		return nil, fmt.Errorf("%w: corrupt history: %w", ErrPersistenceUnavailable, err)
	}
	if list == nil {
		list = []SavedCalculation{}
	}
	return list, nil
}

func (s *Service) record(op string, family Family, status string) {
	metrics.HistoryOperations.WithLabelValues(op, string(family), status).Inc()
}
