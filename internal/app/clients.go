package app

import (
	"fmt"

	"github.com/yungbote/lifetwin-backend/internal/clients/redis"
	"github.com/yungbote/lifetwin-backend/internal/modules/lifetwin/twinny"
	"github.com/yungbote/lifetwin-backend/internal/platform/logger"
)

var _ twinny.Cache = (*redis.NarrativeCache)(nil)

const memoryCacheEntries = 2048

type Clients struct {
	Redis    *redis.NarrativeCache
	Cache    twinny.Cache
	Narrator twinny.Narrator
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis
	var rc *redis.NarrativeCache
	var cache twinny.Cache = twinny.NewMemoryCache(memoryCacheEntries)
	if cfg.RedisAddr != "" {
		c, err := redis.NewNarrativeCache(log, redis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return Clients{}, fmt.Errorf("init redis narrative cache: %w", err)
		}
		rc = c
		cache = c
	}

	// Narrator
	var narrator twinny.Narrator = twinny.RuleNarrator{}
	if cfg.OpenAIAPIKey != "" {
		llm, err := twinny.NewLLMNarrator(twinny.LLMConfig{
			APIKey:   cfg.OpenAIAPIKey,
			BaseURL:  cfg.OpenAIBaseURL,
			Model:    cfg.OpenAIModel,
			Timeout:  cfg.NarratorTimeout,
			Cache:    cache,
			CacheTTL: cfg.NarrativeCacheTTL,
		}, log)
		if err != nil {
			if rc != nil {
				_ = rc.Close()
			}
			return Clients{}, fmt.Errorf("init llm narrator: %w", err)
		}
		narrator = twinny.NewFallbackNarrator(llm, cfg.NarratorTimeout, log)
		log.Info("llm narrator enabled", "model", cfg.OpenAIModel)
	}

	return Clients{Redis: rc, Cache: cache, Narrator: narrator}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
