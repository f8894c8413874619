package tracker

import (
	"time"

	"github.com/julianstephens/girassol/internal/kvstore"
	"github.com/julianstephens/girassol/internal/models"
	"github.com/julianstephens/girassol/internal/schema"
)

// News returns the cached news and whether a cache exists
func (s *Service) News() (models.NewsCache, bool) {
	c := kvstore.Load(s.store, schema.NewsCache, models.NewsCache{})
	if c.Items == nil {
		c.Items = []models.NewsItem{}
	}
	return c, c.Date != ""
}

// CacheNews replaces the news cache, stamping it with the current time
func (s *Service) CacheNews(items []models.NewsItem) models.NewsCache {
	if items == nil {
		items = []models.NewsItem{}
	}
	c := models.NewsCache{Items: items, Date: s.cal.Now().Format(time.RFC3339)}
	kvstore.Save(s.store, schema.NewsCache, c)
	return c
}
