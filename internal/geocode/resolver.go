package geocode

import (
	"context"
	"time"

	"github.com/shenikar/dispatch_console/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Placeholder показывается, когда адрес определить не удалось
const Placeholder = "Address not available"

// Reverser - источник обратного геокодирования
type Reverser interface {
	Reverse(ctx context.Context, lat, lon float64) (string, error)
}

// Resolver возвращает адрес точки. Ошибки не выходят наружу:
// при любой неудаче отдается Placeholder.
type Resolver struct {
	reverser Reverser
	store    Store
	ttl      time.Duration
	logger   *logrus.Logger
	group    singleflight.Group
}

// NewResolver создает резолвер; store может быть nil (без кеша)
func NewResolver(reverser Reverser, store Store, ttl time.Duration, logger *logrus.Logger) *Resolver {
	return &Resolver{
		reverser: reverser,
		store:    store,
		ttl:      ttl,
		logger:   logger,
	}
}

// DisplayName возвращает адрес или Placeholder
func (r *Resolver) DisplayName(ctx context.Context, loc models.Location) string {
	key := cacheKey(loc.Latitude, loc.Longitude)
	log := r.logger.WithFields(logrus.Fields{
		"component": "geocode",
		"key":       key,
	})

	if r.store != nil {
		name, ok, err := r.store.Get(ctx, key)
		if err != nil {
			log.WithError(err).Warn("Geocode cache read failed")
		} else if ok {
			return name
		}
	}

	// одновременные запросы к одной ячейке уходят на сервер один раз
	v, err, _ := r.group.Do(key, func() (any, error) {
		name, err := r.reverser.Reverse(ctx, loc.Latitude, loc.Longitude)
		if err != nil {
			return "", err
		}
		if r.store != nil {
			if err := r.store.Set(ctx, key, name, r.ttl); err != nil {
				log.WithError(err).Warn("Geocode cache write failed")
			}
		}
		return name, nil
	})
	if err != nil {
		log.WithError(err).Debug("Reverse geocoding failed")
		return Placeholder
	}
	return v.(string)
}
