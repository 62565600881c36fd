package main

import (
	"context"
	"fmt"
	"log/slog"

	"vet-clinic-api/internal/adapters/auth/jwtauth"
	"vet-clinic-api/internal/adapters/files/local"
	"vet-clinic-api/internal/adapters/files/s3"
	"vet-clinic-api/internal/adapters/notify/email"
	"vet-clinic-api/internal/adapters/notify/whatsapp"
	"vet-clinic-api/internal/adapters/storage/postgres"
	"vet-clinic-api/internal/adapters/storage/sqlite"
	"vet-clinic-api/internal/config"
	"vet-clinic-api/internal/platform/httpclient"
	"vet-clinic-api/internal/platform/logger"
	"vet-clinic-api/internal/ports/files"
	"vet-clinic-api/internal/ports/notify"

	"gorm.io/gorm"
)

// deps junta lo que arma el proceso a partir de la config.
type deps struct {
	cfg      *config.Config
	log      *slog.Logger
	db       *gorm.DB
	tokens   *jwtauth.Manager
	files    files.Store
	email    notify.Sender
	whatsapp notify.Sender

	closers []func() error
}

func setup(ctx context.Context) (*deps, error) {
	cfg, err := config.Read(cfgFile)
	if err != nil {
		return nil, err
	}

	d := &deps{cfg: cfg}
	d.log = logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App.Name,
		File: logger.File{
			Path:       cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
			Compress:   true,
		},
	})
	slog.SetDefault(d.log)

	if err := d.openDB(); err != nil {
		d.close()
		return nil, err
	}
	if err := d.openTokens(ctx); err != nil {
		d.close()
		return nil, err
	}
	if err := d.openFiles(ctx); err != nil {
		d.close()
		return nil, err
	}
	if err := d.openNotifiers(); err != nil {
		d.close()
		return nil, err
	}
	return d, nil
}

func (d *deps) openDB() error {
	var (
		db  *gorm.DB
		err error
	)
	switch d.cfg.Database.Driver {
	case "postgres":
		db, err = postgres.OpenGorm(d.cfg.Database.DSN, d.log)
	default:
		db, err = sqlite.Open(d.cfg.Database.DSN, d.log)
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", d.cfg.Database.Driver, err)
	}

	d.db = db
	d.closers = append(d.closers, func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	})
	d.log.Info("database ready", "driver", d.cfg.Database.Driver)
	return nil
}

// openTokens usa Redis para la lista de revocados si está habilitado; si
// no, queda en memoria del proceso.
func (d *deps) openTokens(ctx context.Context) error {
	var deny jwtauth.Denylist
	if d.cfg.Redis.Enabled {
		rdb, err := jwtauth.OpenRedis(ctx, d.cfg.Redis.Addr, d.cfg.Redis.Password, d.cfg.Redis.DB)
		if err != nil {
			return err
		}
		d.closers = append(d.closers, rdb.Close)
		deny = jwtauth.NewRedisDenylist(rdb)
		d.log.Info("token denylist on redis", "addr", d.cfg.Redis.Addr)
	}

	m, err := jwtauth.NewManager(jwtauth.Options{
		Secret:     d.cfg.Auth.Secret,
		Issuer:     d.cfg.Auth.Issuer,
		TTL:        d.cfg.Auth.TTL,
		RefreshTTL: d.cfg.Auth.RefreshTTL,
		Denylist:   deny,
	})
	if err != nil {
		return err
	}
	d.tokens = m
	return nil
}

func (d *deps) openFiles(ctx context.Context) error {
	sc := d.cfg.Storage
	switch sc.Driver {
	case "s3":
		st, err := s3.New(ctx, s3.Options{
			Bucket:          sc.S3.Bucket,
			Region:          sc.S3.Region,
			Endpoint:        sc.S3.Endpoint,
			AccessKeyID:     sc.S3.AccessKeyID,
			SecretAccessKey: sc.S3.SecretAccessKey,
			PublicURL:       sc.S3.PublicURL,
			UsePathStyle:    sc.S3.UsePathStyle,
		})
		if err != nil {
			return err
		}
		d.files = st
	default:
		st, err := local.NewDisk(sc.Root, sc.PublicPrefix)
		if err != nil {
			return err
		}
		d.files = st
	}
	d.log.Info("file storage ready", "driver", sc.Driver)
	return nil
}

// openNotifiers deja en nil los canales deshabilitados; las citas responden
// 400 al pedir una alerta por ese canal.
func (d *deps) openNotifiers() error {
	if mc := d.cfg.Mail; mc.Enabled {
		s, err := email.New(email.Options{
			Host:     mc.Host,
			Port:     mc.Port,
			Username: mc.Username,
			Password: mc.Password,
			From:     mc.From,
		})
		if err != nil {
			return err
		}
		d.email = s
	}

	if wc := d.cfg.WhatsApp; wc.Enabled {
		client, err := httpclient.New(httpclient.Options{
			BaseURL: wc.BaseURL,
			Token:   wc.Token,
			Timeout: wc.Timeout,
		})
		if err != nil {
			return fmt.Errorf("whatsapp client: %w", err)
		}
		s, err := whatsapp.New(client, whatsapp.Options{
			PhoneNumberID: wc.PhoneNumberID,
			DefaultRegion: wc.DefaultRegion,
		})
		if err != nil {
			return err
		}
		d.whatsapp = s
	}
	return nil
}

func (d *deps) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			d.log.Warn("close failed", "err", err)
		}
	}
}
