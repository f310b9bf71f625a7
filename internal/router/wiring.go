package router

import (
	"context"
	"fmt"
	"io"

	"guidedog-records/internal/adapters/auth/jwtauth"
	"guidedog-records/internal/adapters/auth/tokenstore"
	blobmem "guidedog-records/internal/adapters/blob/memory"
	blobs3 "guidedog-records/internal/adapters/blob/s3"
	"guidedog-records/internal/adapters/push/gateway"
	"guidedog-records/internal/adapters/push/logsender"
	mem "guidedog-records/internal/adapters/storage/memory"
	pg "guidedog-records/internal/adapters/storage/postgres"
	"guidedog-records/internal/adapters/storage/sqlite"
	"guidedog-records/internal/config"
	"guidedog-records/internal/platform/logger"
	"guidedog-records/internal/ports/blob"
	"guidedog-records/internal/ports/push"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

var nopCloser = closerFunc(func() error { return nil })

// OpenStorage elige el driver según STORAGE_DRIVER.
func OpenStorage(ctx context.Context, cfg config.Config) (Repositories, io.Closer, error) {
	switch cfg.StorageDriver {
	case "", "memory":
		return mem.New(), nopCloser, nil
	case "sqlite":
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case "postgres":
		if cfg.DatabaseDSN == "" {
			return nil, nil, fmt.Errorf("storage postgres: DB_DSN required")
		}
		db, err := pg.Open(cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("storage postgres: %w", err)
		}
		if err := pg.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		s := pg.NewStore(db)
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}

func OpenBlobStore(ctx context.Context, cfg config.BlobConfig) (blob.Store, error) {
	switch blob.Driver(cfg.Driver) {
	case "", blob.DriverMemory:
		return blobmem.New(), nil
	case blob.DriverS3:
		return blobs3.New(ctx, blobs3.Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			PathStyle:       cfg.S3PathStyle,
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
		})
	default:
		return nil, fmt.Errorf("unknown BLOB_DRIVER %q", cfg.Driver)
	}
}

func NewPushSender(cfg config.PushConfig, log logger.Logger) (push.Sender, error) {
	switch cfg.Driver {
	case "", "log":
		return logsender.New(log), nil
	case "gateway":
		return gateway.New(gateway.Config{
			BaseURL: cfg.GatewayURL,
			APIKey:  cfg.APIKey,
			Timeout: cfg.Timeout,
		})
	default:
		return nil, fmt.Errorf("unknown PUSH_DRIVER %q", cfg.Driver)
	}
}

// NewAuth arma el servicio JWT; la lista de revocados va a Redis si hay REDIS_ADDR.
func NewAuth(ctx context.Context, cfg config.Config) (*jwtauth.Service, io.Closer, error) {
	var (
		store  jwtauth.RevocationStore = tokenstore.NewMemory()
		closer io.Closer               = nopCloser
	)
	if cfg.RedisAddr != "" {
		rs, err := tokenstore.DialRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		store, closer = rs, rs
	}

	svc, err := jwtauth.New(jwtauth.Config{Secret: cfg.JWTSecret, TTL: cfg.JWTTTL, Issuer: cfg.AppName}, store)
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	return svc, closer, nil
}
