package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	domainhotels "hotelstay/internal/domain/hotels"
)

func loadHotelFixtures(ctx context.Context, repo domainhotels.Repository, path string, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("hotel fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}
	if len(data) == 0 {
		logger.Warn("hotel fixtures file empty", "path", path)
		return nil
	}

	var fixtures []*domainhotels.Hotel
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}
	now := time.Now().UTC()
	imported := 0
	for _, h := range fixtures {
		if h.CreatedAt.IsZero() {
			h.CreatedAt = now
		}
		if err := repo.Save(ctx, h); err != nil {
			logger.Error("cannot store fixture hotel", "hotel_id", h.ID, "error", err)
			continue
		}
		imported++
	}
	logger.Info("hotel fixtures imported", "count", imported, "path", path)
	return nil
}

func fixturesPath(configured string) string {
	if configured != "" {
		return configured
	}
	candidates := []string{
		filepath.Join("data", "hotels.json"),
		filepath.Join("..", "..", "data", "hotels.json"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return candidates[0]
}
