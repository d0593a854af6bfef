package rashifal

import (
	"context"
	"fmt"
	"strings"

	"github.com/stallcraft/backend/internal/cache"
	"github.com/stallcraft/backend/pkg/config"
	"github.com/stallcraft/backend/pkg/db"
	"github.com/stallcraft/backend/pkg/db/models"
	"github.com/stallcraft/backend/pkg/enums"
	pkgerrors "github.com/stallcraft/backend/pkg/errors"
	"github.com/stallcraft/backend/pkg/logger"
)

// Service exposes the daily horoscope read and edit paths.
type Service interface {
	List(ctx context.Context) ([]models.Rashifal, string, error)
	GetBySign(ctx context.Context, sign enums.ZodiacSign) (*models.Rashifal, error)
	Upsert(ctx context.Context, sign enums.ZodiacSign, description string) (*models.Rashifal, error)
}

type service struct {
	repo  *Repository
	cache *cache.Collection[models.Rashifal]
	logg  *logger.Logger
}

// NewService constructs a rashifal service with its snapshot cache.
func NewService(repo *Repository, cfg config.CacheConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("rashifal repository required")
	}
	col, err := cache.NewCollection("rashifal", repo.ListPage, cfg.TTL, cfg.DefaultBatchSize, logg)
	if err != nil {
		return nil, fmt.Errorf("rashifal cache: %w", err)
	}
	return &service{repo: repo, cache: col, logg: logg}, nil
}

// List returns the stored entries in canonical zodiac order, Mesh through Meen.
func (s *service) List(ctx context.Context) ([]models.Rashifal, string, error) {
	snap, err := s.cache.Get(ctx, false)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading rashifal")
	}

	bySign := make(map[enums.ZodiacSign]models.Rashifal, len(snap.Data))
	for _, row := range snap.Data {
		bySign[row.Title] = row
	}

	ordered := make([]models.Rashifal, 0, len(enums.ZodiacSigns))
	for _, sign := range enums.ZodiacSigns {
		if row, ok := bySign[sign]; ok {
			ordered = append(ordered, row)
		}
	}
	return ordered, snap.ETag, nil
}

func (s *service) GetBySign(ctx context.Context, sign enums.ZodiacSign) (*models.Rashifal, error) {
	if !sign.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown zodiac sign %q", sign))
	}
	found, err := s.repo.FindBySign(ctx, sign)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rashifal not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading rashifal")
	}
	return found, nil
}

func (s *service) Upsert(ctx context.Context, sign enums.ZodiacSign, description string) (*models.Rashifal, error) {
	if !sign.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown zodiac sign %q", sign))
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}

	row, err := s.repo.Upsert(ctx, sign, description)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving rashifal")
	}

	if err := s.cache.Refresh(ctx); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithCollection(ctx, "rashifal"), "cache refresh after write failed")
	}
	return row, nil
}
