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

package bus

import (
	"github.com/carverauto/datamodeld/pkg/models"
)

const (
	defaultSubjectPrefix = "datamodel"
	defaultClientName    = "datamodeld"
)

// Config holds the NATS bus adapter configuration.
type Config struct {
	// NATSURL is the server to connect to, e.g. nats://127.0.0.1:4222.
	NATSURL string `json:"nats_url"`
	// SubjectPrefix roots every request and event subject. Defaults to
	// "datamodel".
	SubjectPrefix string `json:"subject_prefix,omitempty"`
	// StreamName, when set, publishes attribute value events to this
	// JetStream stream instead of plain subjects.
	StreamName string `json:"stream_name,omitempty"`
	// Domain selects a JetStream domain for leaf-node deployments.
	Domain string `json:"domain,omitempty"`

	Security *models.SecurityConfig `json:"security,omitempty"`
}

// Validate checks the configuration and fills defaults.
func (c *Config) Validate() error {
	if c.NATSURL == "" {
		return errNatsURLRequired
	}

	if c.SubjectPrefix == "" {
		c.SubjectPrefix = defaultSubjectPrefix
	}

	if c.Security != nil && c.Security.Mode == models.SecurityModeMTLS {
		switch {
		case c.Security.TLS.CertFile == "":
			return errCertFileRequired
		case c.Security.TLS.KeyFile == "":
			return errKeyFileRequired
		case c.Security.TLS.CAFile == "":
			return errCAFileRequired
		}
	}

	return nil
}
