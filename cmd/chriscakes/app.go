// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/redis/go-redis/v9"

	"chriscakes/internal/assets"
	"chriscakes/internal/cache"
	"chriscakes/internal/config"
	"chriscakes/internal/contact"
	"chriscakes/internal/content"
	"chriscakes/internal/database"
	"chriscakes/internal/filesource"
	"chriscakes/internal/handlers"
	"chriscakes/internal/mail"
	"chriscakes/internal/middleware"
	"chriscakes/internal/render"
	"chriscakes/internal/richtext"
	"chriscakes/internal/router"
	"chriscakes/internal/sanity"
	"chriscakes/internal/sections"
	"chriscakes/internal/seo"
	"chriscakes/internal/storage"
	"chriscakes/internal/store"
	"chriscakes/web"
)

// site holds the wired application and the resources it owns.
type site struct {
	source    content.Source
	files     *filesource.Source // set for the file backend
	db        *sql.DB
	valkey    *redis.Client
	pageCache *cache.PageCache
	handler   http.Handler
}

// Close releases the database and cache connections.
func (s *site) Close() {
	if s.valkey != nil {
		s.valkey.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
}

// openFiles loads the YAML content tree from CONTENT_DIR, or the embedded
// fixtures when it is unset.
func openFiles(cfg *config.Config) (*filesource.Source, error) {
	if cfg.ContentDir != "" {
		return filesource.Open(cfg.ContentDir)
	}
	tree, err := fs.Sub(web.ContentFS, "content")
	if err != nil {
		return nil, fmt.Errorf("embedded content: %w", err)
	}
	return filesource.New(tree)
}

// openSource selects the content backend named by the configuration.
func openSource(ctx context.Context, cfg *config.Config, s *site) error {
	switch cfg.ContentBackend {
	case config.BackendSanity:
		client, err := sanity.New(sanity.Config{
			ProjectID:  cfg.SanityProjectID,
			Dataset:    cfg.SanityDataset,
			APIVersion: cfg.SanityAPIVersion,
			Token:      cfg.SanityToken,
			UseCDN:     cfg.SanityUseCDN,
		})
		if err != nil {
			return err
		}
		s.source = client

	case config.BackendPostgres:
		db, err := database.Connect(ctx, cfg.DSN())
		if err != nil {
			return err
		}
		s.db = db
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
		s.source = store.New(db)

	default:
		files, err := openFiles(cfg)
		if err != nil {
			return err
		}
		s.files = files
		s.source = files
	}
	return nil
}

// imageResolver picks where image references point: the content store's
// CDN for the hosted backend, the public bucket when storage is
// configured, and the bundled static images otherwise.
func imageResolver(cfg *config.Config, bucket *storage.Client) assets.Resolver {
	switch {
	case cfg.ContentBackend == config.BackendSanity:
		return assets.CDN{ProjectID: cfg.SanityProjectID, Dataset: cfg.SanityDataset}
	case bucket != nil:
		return bucket
	default:
		return assets.Static{Prefix: "/static/images"}
	}
}

func openStorage(cfg *config.Config) (*storage.Client, error) {
	return storage.New(storage.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		PublicURL: cfg.S3PublicURL,
		Prefix:    cfg.S3Prefix,
	})
}

// buildSite wires the content backend, renderers, contact pipeline and
// router. withCache connects the Valkey page cache when one is configured.
func buildSite(ctx context.Context, cfg *config.Config, withCache bool) (*site, error) {
	s := &site{}
	if err := openSource(ctx, cfg, s); err != nil {
		s.Close()
		return nil, err
	}

	if withCache && cfg.ValkeyHost != "" {
		client, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.valkey = client
		s.pageCache = cache.NewPageCache(client, cfg.PageCacheTTL)
	} else if withCache {
		slog.Warn("valkey not configured, page cache disabled")
	}

	bucket, err := openStorage(cfg)
	if err != nil {
		s.Close()
		return nil, err
	}
	images := imageResolver(cfg, bucket)

	renderer, err := render.New(images)
	if err != nil {
		s.Close()
		return nil, err
	}
	secs, err := sections.New(richtext.New(images), images)
	if err != nil {
		s.Close()
		return nil, err
	}

	sender := mail.NewSMTP(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.ResendAPIKey,
	})
	if sender == nil {
		slog.Warn("mail not configured, contact submissions will be rejected")
	}
	inquiries, err := contact.NewService(
		middleware.NewRateLimiter(cfg.ContactRateLimit, cfg.ContactRateWindow),
		sender,
		s.source,
		contact.Config{From: cfg.FromEmail, FallbackTo: cfg.ContactEmailTo},
	)
	if err != nil {
		s.Close()
		return nil, err
	}

	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("embedded static: %w", err)
	}

	origin := strings.TrimSuffix(cfg.SiteURL, "/")
	meta := seo.Site{
		Name:  cfg.SiteName,
		URL:   origin,
		Image: origin + "/static/images/logo.png",
	}
	public := handlers.NewPublic(s.source, renderer, secs, images, meta, s.pageCache)
	api := handlers.NewAPI(inquiries, s.pageCache, cfg.RevalidateSecret)
	s.handler = router.New(public, api, static, origin)
	return s, nil
}
