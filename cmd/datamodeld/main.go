/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/nats-io/nats.go"

	"github.com/carverauto/datamodeld/pkg/bus"
	"github.com/carverauto/datamodeld/pkg/config"
	"github.com/carverauto/datamodeld/pkg/datamodel"
	"github.com/carverauto/datamodeld/pkg/lifecycle"
	"github.com/carverauto/datamodeld/pkg/logger"
	"github.com/carverauto/datamodeld/pkg/sysinfo"
)

type serverConfig struct {
	Logging *logger.Config `json:"logging,omitempty"`
	Bus     bus.Config     `json:"bus"`
}

func (c *serverConfig) Validate() error {
	return c.Bus.Validate()
}

func defaultServerConfig() *serverConfig {
	return &serverConfig{
		Bus: bus.Config{NATSURL: nats.DefaultURL},
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to service config file (optional)")
	flag.Parse()

	// The single positional argument is the attribute schema file.
	schemaPath := datamodel.DefaultSchemaPath
	if flag.NArg() > 0 {
		schemaPath = flag.Arg(0)
	}

	ctx := context.Background()

	cfg := defaultServerConfig()

	if *configPath != "" {
		cfgLoader := config.NewConfig()
		if err := cfgLoader.LoadAndValidate(ctx, *configPath, cfg); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	logImpl, err := logger.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	collector := sysinfo.NewCollector(logImpl)

	registry, err := datamodel.LoadRegistry(schemaPath, sysinfo.Builtins(collector), logImpl)
	if err != nil {
		return fmt.Errorf("failed to load data models from %s: %w", schemaPath, err)
	}

	logImpl.Info().
		Str("schema", schemaPath).
		Int("attributes", registry.Len()).
		Msg("Loaded data model registry")

	adapter, err := bus.NewService(&cfg.Bus, registry, logImpl)
	if err != nil {
		return fmt.Errorf("failed to create bus adapter: %w", err)
	}

	if err := lifecycle.Run(ctx, adapter, logImpl); err != nil {
		return fmt.Errorf("service error: %w", err)
	}

	return nil
}
