package main

import (
	"context"

	"go.uber.org/zap"
)

type AdvertServiceProvider interface {
	Add(ctx context.Context, advert Advert) (Advert, error)
	AddMany(ctx context.Context, adverts []Advert) ([]Advert, error)
	GetAll(ctx context.Context) ([]Advert, error)
	GetByCategory(ctx context.Context, category string) ([]Advert, error)
	GetByMaxPrice(ctx context.Context, maxPrice float64) ([]Advert, error)
	Update(ctx context.Context, id int, advert Advert) (Advert, error)
	Delete(ctx context.Context, id int) error
	Clear(ctx context.Context) error
	Stats(ctx context.Context) IndexStats
}

type AdvertService struct {
	logger *zap.Logger
	index  CatalogIndexer
}

// NewAdvertService provides the adverts service. The catalog gauges are fed
// by the index itself so they follow the order of the mutations.
func NewAdvertService(logger *zap.Logger, index CatalogIndexer, metrics *Metrics) AdvertServiceProvider {
	if metrics != nil {
		index.OnChange(metrics.SetCatalogStats)
	}
	return &AdvertService{
		logger: logger,
		index:  index,
	}
}

func (as *AdvertService) Add(ctx context.Context, advert Advert) (Advert, error) {
	if err := ctx.Err(); err != nil {
		return advert, err
	}
	created, err := as.index.Create(advert)
	if err != nil {
		return advert, err
	}
	as.logger.Debug("service: advert added", zap.Int("advert.id", created.ID), zap.String("advert.category", created.Category))
	return created, nil
}

func (as *AdvertService) AddMany(ctx context.Context, adverts []Advert) ([]Advert, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	created, err := as.index.CreateMany(adverts)
	if err != nil {
		return nil, err
	}
	as.logger.Debug("service: adverts added", zap.Int("adverts.count", len(created)))
	return created, nil
}

func (as *AdvertService) GetAll(ctx context.Context) ([]Advert, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return as.index.GetAll(), nil
}

func (as *AdvertService) GetByCategory(ctx context.Context, category string) ([]Advert, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return as.index.GetByCategory(category), nil
}

func (as *AdvertService) GetByMaxPrice(ctx context.Context, maxPrice float64) ([]Advert, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return as.index.GetByMaxPrice(maxPrice), nil
}

func (as *AdvertService) Update(ctx context.Context, id int, advert Advert) (Advert, error) {
	if err := ctx.Err(); err != nil {
		return advert, err
	}
	updated, err := as.index.Update(id, advert)
	if err != nil {
		return advert, err
	}
	as.logger.Debug("service: advert updated", zap.Int("advert.id", id), zap.String("advert.category", updated.Category))
	return updated, nil
}

// Delete removes the advert. Deleting an unknown advert is not an error.
func (as *AdvertService) Delete(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if removed := as.index.Delete(id); !removed {
		as.logger.Debug("service: advert to delete not found", zap.Int("advert.id", id))
		return nil
	}
	as.logger.Debug("service: advert deleted", zap.Int("advert.id", id))
	return nil
}

// Clear drops every advert of the catalog.
func (as *AdvertService) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	as.index.Clear()
	as.logger.Debug("service: catalog cleared")
	return nil
}

func (as *AdvertService) Stats(_ context.Context) IndexStats {
	return as.index.Stats()
}
