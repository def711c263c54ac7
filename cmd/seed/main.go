package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"shareit/internal/cache"
	"shareit/internal/config"
	"shareit/internal/db"
	"shareit/internal/logging"
	"shareit/internal/model"
	"shareit/internal/repository"
	"shareit/internal/service"
)

const defaultSeedPath = "configs/seed.yaml"

// SeedData is the fixture format: users with the items they lend out.
type SeedData struct {
	Users []SeedUser `yaml:"users"`
}

type SeedUser struct {
	Name  string     `yaml:"name"`
	Email string     `yaml:"email"`
	Items []SeedItem `yaml:"items"`
}

type SeedItem struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Available   bool   `yaml:"available"`
}

// SeedResult counts what a run changed.
type SeedResult struct {
	UsersCreated int
	UsersUpdated int
	ItemsCreated int
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}
	logger := logging.Component(baseLogger, "seed")

	gormDB, err := db.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := db.Migrate(gormDB); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	cacheClient := initCache(cfg, logger)
	if cacheClient != nil {
		defer cacheClient.Close()
	}

	source := os.Getenv("SEED_PATH")
	if source == "" {
		source = defaultSeedPath
	}
	data, err := loadSeed(source)
	if err != nil {
		return fmt.Errorf("load seed data from %s: %w", source, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	result, err := seed(ctx, repository.NewUserRepository(gormDB), repository.NewItemRepository(gormDB), cacheClient, data)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	logger.Info().
		Int("users_created", result.UsersCreated).
		Int("users_updated", result.UsersUpdated).
		Int("items_created", result.ItemsCreated).
		Msg("seed completed")
	return nil
}

// initCache connects to Redis so renamed users can be evicted. Seeding still
// runs without it.
func initCache(cfg *config.Config, logger *zerolog.Logger) *cache.Client {
	if cfg.Redis.Address == "" {
		return nil
	}
	client := cache.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, cached users may serve stale names until their TTL expires")
		_ = client.Close()
		return nil
	}
	return client
}

// loadSeed reads fixtures from a local file or an http(s) URL.
func loadSeed(source string) (*SeedData, error) {
	var raw []byte
	var err error
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		raw, err = fetch(source)
	} else {
		raw, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, err
	}
	var data SeedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	return &data, nil
}

func fetch(url string) ([]byte, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch seed data: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("seed source returned status code: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// seed upserts users by email and creates their items when the owner has no
// item of that name yet, so repeated runs do not duplicate rows. Updated users
// are evicted from the cache the server reads through; cache may be nil.
func seed(ctx context.Context, users repository.UserRepository, items repository.ItemRepository, cache *cache.Client, data *SeedData) (SeedResult, error) {
	var result SeedResult
	for _, su := range data.Users {
		user, err := users.FindByEmail(ctx, su.Email)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = &model.User{Name: su.Name, Email: su.Email}
			if err := users.Create(ctx, user); err != nil {
				return result, fmt.Errorf("create user %s: %w", su.Email, err)
			}
			result.UsersCreated++
		case err != nil:
			return result, fmt.Errorf("find user %s: %w", su.Email, err)
		default:
			user.Name = su.Name
			if err := users.Update(ctx, user); err != nil {
				return result, fmt.Errorf("update user %s: %w", su.Email, err)
			}
			_ = cache.Delete(ctx, service.UserCacheKey(user.ID))
			result.UsersUpdated++
		}

		owned, err := items.ListByOwner(ctx, user.ID, model.Unpaged())
		if err != nil {
			return result, fmt.Errorf("list items of %s: %w", su.Email, err)
		}
		have := make(map[string]bool, len(owned))
		for _, it := range owned {
			have[strings.ToLower(it.Name)] = true
		}
		for _, si := range su.Items {
			if have[strings.ToLower(si.Name)] {
				continue
			}
			item := &model.Item{
				Name:        si.Name,
				Description: si.Description,
				Available:   si.Available,
				OwnerID:     user.ID,
			}
			if err := items.Create(ctx, item); err != nil {
				return result, fmt.Errorf("create item %q: %w", si.Name, err)
			}
			have[strings.ToLower(si.Name)] = true
			result.ItemsCreated++
		}
	}
	return result, nil
}
