// Copyright 2025 The packetd Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package controller wires storage, the broadcaster, the command
// service, the kv connection driver, the debug HTTP server, and the
// metrics exporter into one running process, the same way the
// teacher's Controller wired sniffer/pipeline/server/exporter together.
package controller

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/packetd/kvdb/broadcast"
	"github.com/packetd/kvdb/common"
	"github.com/packetd/kvdb/confengine"
	"github.com/packetd/kvdb/exporter"
	"github.com/packetd/kvdb/internal/wait"
	"github.com/packetd/kvdb/kvserver"
	"github.com/packetd/kvdb/logger"
	"github.com/packetd/kvdb/server"
	"github.com/packetd/kvdb/service"
	"github.com/packetd/kvdb/storage"
)

type Controller struct {
	ctx       context.Context
	cancel    context.CancelFunc
	cfg       Config
	buildInfo common.BuildInfo

	store       storage.Storage
	broadcaster *broadcast.Broadcaster
	svc         *service.Service
	kv          *kvserver.Server
	svr         *server.Server
	exp         *exporter.Exporter
}

func setupLogger(conf *confengine.Config) error {
	var opts logger.Options
	if err := conf.UnpackChild("logger", &opts); err != nil {
		return err
	}

	if opts.Filename == "" {
		opts.Filename = "kvdb.log"
	}
	if opts.MaxBackups <= 0 {
		opts.MaxBackups = 10
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = 7
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = 100
	}

	logger.SetOptions(opts)
	return nil
}

// New builds every layer of the service from conf but does not start
// accepting connections; call Start for that.
func New(conf *confengine.Config, buildInfo common.BuildInfo) (*Controller, error) {
	if err := setupLogger(conf); err != nil {
		return nil, err
	}

	var cfg Config
	if err := conf.UnpackChild("controller", &cfg); err != nil {
		return nil, err
	}
	if cfg.Storage == "" {
		cfg.Storage = "memory"
	}

	backend, err := storage.Get(cfg.Storage)
	if err != nil {
		return nil, err
	}
	store, err := backend(cfg.StorageOptions)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open storage backend %q", cfg.Storage)
	}

	bc := broadcast.New()
	svc := service.New(store, bc)

	var kvCfg kvserver.Config
	if err := conf.UnpackChild("kvserver", &kvCfg); err != nil {
		return nil, err
	}
	kv, err := kvserver.NewServer(kvCfg, svc)
	if err != nil {
		return nil, err
	}

	svr, err := server.New(conf)
	if err != nil {
		return nil, err
	}

	exp, err := exporter.New(conf)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		ctx:         ctx,
		cancel:      cancel,
		cfg:         cfg,
		buildInfo:   buildInfo,
		store:       store,
		broadcaster: bc,
		svc:         svc,
		kv:          kv,
		svr:         svr,
		exp:         exp,
	}, nil
}

// Start runs the kv server and, if configured, the debug HTTP server and
// the metrics exporter. Both servers run in background goroutines, so
// Start returns without waiting for the kv listener to be bound; a kv
// Serve error is logged and Serve is run again by wait.Until.
func (c *Controller) Start() error {
	c.setupServer()

	if c.svr != nil {
		go func() {
			err := c.svr.ListenAndServe()
			if !errors.Is(err, io.EOF) {
				logger.Errorf("failed to start debug server: %v", err)
			}
		}()
	}

	c.exp.Start()

	// wait.Until supervises the kv server the way the teacher supervised
	// its roundtrip consumer loop: re-run on an unexpected return, stop
	// once c.ctx is cancelled by Stop.
	go wait.Until(c.ctx, func() {
		if err := c.kv.Serve(); err != nil {
			logger.Errorf("kv server stopped: %v", err)
		}
	})

	return nil
}

func (c *Controller) recordMetrics() {
	uptime.Set(float64(time.Now().Unix() - common.Started()))
	buildInfo.WithLabelValues(c.buildInfo.Version, c.buildInfo.GitHash, c.buildInfo.Time).Inc()
}

// Reload re-applies only the "logger" config section. The rest of this
// service's configuration is not hot-swapped (the storage backend is
// opened once at startup, and the kv/debug listeners would need a full
// rebind). It is called by cmd/serve.go's SIGHUP handler, matching the
// teacher's reload-on-SIGHUP convention.
func (c *Controller) Reload(conf *confengine.Config) error {
	return setupLogger(conf)
}

func (c *Controller) Stop() {
	_ = c.kv.Stop()
	if c.svr != nil {
		// the debug server has no explicit Stop in the teacher's
		// implementation either; closing the controller's context is
		// enough to let the process exit once in-flight handlers drain.
	}
	c.exp.Close()
	_ = c.store.Close()
	c.cancel()
}
