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

// Package bus exposes the attribute registry over NATS: request/reply
// get/set per attribute name, a subscribe notification hook, and attribute
// value events published as CloudEvents.
package bus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/carverauto/datamodeld/pkg/datamodel"
	"github.com/carverauto/datamodeld/pkg/lifecycle"
	"github.com/carverauto/datamodeld/pkg/logger"
	"github.com/carverauto/datamodeld/pkg/models"
)

// Service is the bus adapter. It owns the NATS connection and relays
// get/set requests to the registry's dispatch.
type Service struct {
	cfg      *Config
	registry *datamodel.Registry
	log      logger.Logger

	nc     *nats.Conn
	js     jetstream.JetStream
	events *EventPublisher
	subs   []*nats.Subscription
}

// NewService creates the bus adapter for a loaded registry.
func NewService(cfg *Config, registry *datamodel.Registry, log logger.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if registry == nil {
		return nil, errRegistryRequired
	}

	return &Service{cfg: cfg, registry: registry, log: log}, nil
}

// Start connects to NATS, registers the request handlers and publishes
// every attribute's resolved initial value.
func (s *Service) Start(ctx context.Context) error {
	if s.nc != nil {
		return errAlreadyStarted
	}

	nc, err := s.connect()
	if err != nil {
		return err
	}

	s.nc = nc

	if s.cfg.StreamName != "" {
		var js jetstream.JetStream
		if s.cfg.Domain != "" {
			js, err = jetstream.NewWithDomain(nc, s.cfg.Domain)
		} else {
			js, err = jetstream.New(nc)
		}

		if err != nil {
			nc.Close()
			return fmt.Errorf("failed to create JetStream context: %w", err)
		}

		if err = ensureStream(ctx, js, s.cfg.StreamName, s.cfg.SubjectPrefix); err != nil {
			nc.Close()
			return err
		}

		s.js = js
	}

	s.events = NewEventPublisher(nc, s.js, s.cfg.SubjectPrefix)

	if err := s.subscribeHandlers(ctx); err != nil {
		nc.Close()
		return err
	}

	s.publishInitialValues(ctx)

	s.log.Info().
		Int("attributes", s.registry.Len()).
		Str("prefix", s.cfg.SubjectPrefix).
		Msg("Registered data model attributes on the bus")

	return nil
}

// Stop drains the subscriptions and closes the connection.
func (s *Service) Stop(_ context.Context) error {
	for _, sub := range s.subs {
		_ = sub.Drain()
	}

	s.subs = nil

	if s.nc != nil {
		s.nc.Close()
		s.nc = nil
	}

	s.log.Info().Msg("Bus adapter stopped")

	return nil
}

func (s *Service) connect() (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name(defaultClientName),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			s.log.Error().Err(err).Msg("NATS error")
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			s.log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			s.log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	if s.cfg.Security != nil && s.cfg.Security.Mode == models.SecurityModeMTLS {
		tlsConf, err := TLSConfig(s.cfg.Security)
		if err != nil {
			return nil, fmt.Errorf("failed to build NATS TLS config: %w", err)
		}

		opts = append(opts,
			nats.Secure(tlsConf),
			nats.RootCAs(s.cfg.Security.TLS.CAFile),
			nats.ClientCert(s.cfg.Security.TLS.CertFile, s.cfg.Security.TLS.KeyFile),
		)
	}

	nc, err := nats.Connect(s.cfg.NATSURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	s.log.Info().Str("url", nc.ConnectedUrl()).Msg("Connected to NATS")

	return nc, nil
}

func (s *Service) subject(op string) string {
	return fmt.Sprintf("%s.%s", s.cfg.SubjectPrefix, op)
}

func (s *Service) subscribeHandlers(ctx context.Context) error {
	handlers := map[string]nats.MsgHandler{
		s.subject("get"): func(msg *nats.Msg) {
			s.handleGet(ctx, msg)
		},
		s.subject("set"): func(msg *nats.Msg) {
			s.handleSet(ctx, msg)
		},
		s.subject("subscribe"): func(msg *nats.Msg) {
			s.handleSubscribe(msg)
		},
	}

	for subject, handler := range handlers {
		sub, err := s.nc.Subscribe(subject, handler)
		if err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
		}

		s.subs = append(s.subs, sub)
	}

	return nil
}

// publishInitialValues pushes every attribute's resolved value onto the
// bus once at startup, in registry order. Provider failures skip that one
// attribute; the rest still publish.
func (s *Service) publishInitialValues(ctx context.Context) {
	_ = s.registry.ForEach(ctx, func(name string, value datamodel.Value, err error) error {
		if err != nil {
			s.log.Warn().Err(err).Str("name", name).
				Msg("Skipping initial publication, provider failed")
			return nil
		}

		if pubErr := s.events.PublishAttributeValue(ctx, name, value); pubErr != nil {
			s.log.Warn().Err(pubErr).Str("name", name).
				Msg("Failed to publish initial value")
		}

		return nil
	})
}

func (s *Service) handleGet(ctx context.Context, msg *nats.Msg) {
	s.respond(msg, s.getReply(ctx, msg.Data))
}

func (s *Service) handleSet(ctx context.Context, msg *nats.Msg) {
	s.respond(msg, s.setReply(ctx, msg.Data))
}

func (s *Service) handleSubscribe(msg *nats.Msg) {
	s.respond(msg, s.subscribeReply(msg.Data))
}

func (s *Service) getReply(ctx context.Context, data []byte) Reply {
	var req GetRequest
	if err := json.Unmarshal(data, &req); err != nil || req.Name == "" {
		return Reply{Error: ErrorCodeInvalidRequest}
	}

	value, err := s.registry.Get(ctx, req.Name)
	if err != nil {
		s.log.Debug().Err(err).Str("name", req.Name).Msg("Get failed")
		return Reply{Error: errorCode(err)}
	}

	wv, err := encodeWireValue(value)
	if err != nil {
		return Reply{Error: ErrorCodeInternal}
	}

	return Reply{OK: true, Value: wv}
}

func (s *Service) setReply(ctx context.Context, data []byte) Reply {
	var req SetRequest
	if err := json.Unmarshal(data, &req); err != nil || req.Name == "" {
		return Reply{Error: ErrorCodeInvalidRequest}
	}

	value, err := decodeWireValue(req.Value)
	if err != nil {
		return Reply{Error: errorCode(err)}
	}

	if err := s.registry.Set(ctx, req.Name, value); err != nil {
		s.log.Debug().Err(err).Str("name", req.Name).Msg("Set failed")
		return Reply{Error: errorCode(err)}
	}

	s.log.Info().
		Str("name", req.Name).
		Str("value", value.String()).
		Msg("Attribute value changed")

	if s.events != nil {
		if err := s.events.PublishAttributeValue(ctx, req.Name, value); err != nil {
			s.log.Warn().Err(err).Str("name", req.Name).Msg("Failed to publish value change")
		}
	}

	return Reply{OK: true}
}

// subscribeReply acknowledges subscription notifications. Clients manage
// their own NATS subscriptions on the value subjects, so this is log-only.
func (s *Service) subscribeReply(data []byte) Reply {
	var req SubscribeRequest
	if err := json.Unmarshal(data, &req); err != nil || req.Name == "" {
		return Reply{Error: ErrorCodeInvalidRequest}
	}

	s.log.Info().
		Str("name", req.Name).
		Str("action", req.Action).
		Msg("Subscription notification")

	return Reply{OK: true}
}

func (s *Service) respond(msg *nats.Msg, reply Reply) {
	if msg.Reply == "" {
		return
	}

	data, err := json.Marshal(reply)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to marshal reply")
		return
	}

	if err := msg.Respond(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to send reply")
	}
}

var _ lifecycle.Service = (*Service)(nil)
