package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"saaskit/internal/cms"
	"saaskit/internal/config"
	apperrors "saaskit/internal/errors"
	"saaskit/internal/logger"
	"saaskit/internal/model"
	"saaskit/internal/observability"
)

const defaultSource = "fixtures/profiles.json"

func main() {
	source := flag.String("source", defaultSource, "profile fixture: a file path or an http(s) URL")
	prune := flag.Bool("prune", false, "delete CMS profiles whose clerkId is not in the fixture")
	flag.Parse()

	log := logger.Default()
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal("load .env", zap.Error(err))
	}
	cfg := config.Load()
	if cfg.StrapiURL == "" {
		log.Fatal("STRAPI_URL is required to seed profiles")
	}

	if _, err := observability.InitSentry(observability.SentryConfig{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Env,
	}); err != nil {
		log.Fatal("sentry init", zap.Error(err))
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fail := func(msg string, err error, fields ...zap.Field) {
		observability.CaptureBackground(ctx, err)
		observability.Flush(2 * time.Second)
		log.Fatal(msg, append(fields, zap.Error(err))...)
	}

	log.Info("fetching profiles", zap.String("source", *source))
	profiles, err := loadProfiles(*source)
	if err != nil {
		fail("load profiles", err)
	}

	valid := make([]model.NewProfile, 0, len(profiles))
	validate := validator.New()
	for _, p := range profiles {
		if err := validate.Struct(p); err != nil {
			log.Warn("skipping invalid profile", zap.String("clerk_id", p.ClerkID), zap.Error(err))
			continue
		}
		valid = append(valid, p)
	}
	if skipped := len(profiles) - len(valid); skipped > 0 {
		log.Warn("skipped invalid profiles", zap.Int("count", skipped))
	}

	client := cms.NewClient(cms.Config{BaseURL: cfg.StrapiURL, Token: cfg.StrapiToken, Timeout: cfg.StrapiTimeout})

	created, updated, err := seedProfiles(ctx, client, valid)
	if err != nil {
		fail("seed profiles", err, zap.Int("created", created), zap.Int("updated", updated))
	}

	deleted := 0
	if *prune {
		deleted, err = pruneProfiles(ctx, client, profiles)
		if err != nil {
			fail("prune profiles", err, zap.Int("deleted", deleted))
		}
	}
	log.Info("seed completed",
		zap.Int("created", created),
		zap.Int("updated", updated),
		zap.Int("deleted", deleted),
		zap.Int("total", created+updated),
	)
}

// loadProfiles reads a JSON array of profiles from a local file or a URL.
func loadProfiles(source string) ([]model.NewProfile, error) {
	var r io.ReadCloser
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", source, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch %s: status %d", source, resp.StatusCode)
		}
		r = resp.Body
	} else {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", source, err)
		}
		r = f
	}
	defer r.Close()

	var profiles []model.NewProfile
	if err := json.NewDecoder(r).Decode(&profiles); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}
	return profiles, nil
}

// seedProfiles creates missing profiles and refreshes the editable fields of existing ones.
func seedProfiles(ctx context.Context, client cms.Client, profiles []model.NewProfile) (created int, updated int, err error) {
	for _, p := range profiles {
		existing, err := client.FetchProfile(ctx, p.ClerkID)
		if err != nil && !errors.Is(err, apperrors.ErrProfileNotFound) {
			return created, updated, fmt.Errorf("check profile %s: %w", p.ClerkID, err)
		}

		if existing != nil {
			update := model.ProfileUpdate{
				FirstName: p.FirstName,
				LastName:  p.LastName,
				Bio:       &p.Bio,
			}
			if p.Locale != "" {
				update.Locale = &p.Locale
			}
			if p.Timezone != "" {
				update.Timezone = &p.Timezone
			}
			if _, err := client.UpdateProfile(ctx, existing.ID, update); err != nil {
				return created, updated, fmt.Errorf("update profile %s: %w", p.ClerkID, err)
			}
			updated++
			continue
		}

		if _, err := client.CreateProfile(ctx, p); err != nil {
			return created, updated, fmt.Errorf("create profile %s: %w", p.ClerkID, err)
		}
		created++
	}
	return created, updated, nil
}

// pruneProfiles deletes every CMS profile whose clerkId is absent from keep.
func pruneProfiles(ctx context.Context, client cms.Client, keep []model.NewProfile) (int, error) {
	wanted := make(map[string]struct{}, len(keep))
	for _, p := range keep {
		wanted[p.ClerkID] = struct{}{}
	}

	existing, err := client.ListProfiles(ctx)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, p := range existing {
		if _, ok := wanted[p.ClerkID]; ok {
			continue
		}
		if err := client.DeleteProfile(ctx, p.ID); err != nil {
			return deleted, fmt.Errorf("delete profile %s: %w", p.ClerkID, err)
		}
		deleted++
	}
	return deleted, nil
}
