// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package elastic

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultIndex       = "documents"
	DefaultSize        = 10
	DefaultMaxAttempts = 1
	DefaultRetryDelay  = 200 * time.Millisecond
)

// Config holds connection and query settings for the Elasticsearch gateway.
type Config struct {
	Addresses   []string      // Node URLs, e.g. http://localhost:9200
	Index       string        // Index holding documents with a "content" field
	Size        int           // Maximum hits per query
	Username    string        // Optional basic auth user
	Password    string        // Optional basic auth password
	MaxAttempts int           // Attempts per search, including the first
	RetryDelay  time.Duration // Base backoff delay between attempts
}

// DefaultConfig returns a configuration for a local single-node cluster.
func DefaultConfig() *Config {
	return &Config{
		Addresses:   []string{"http://localhost:9200"},
		Index:       DefaultIndex,
		Size:        DefaultSize,
		MaxAttempts: DefaultMaxAttempts,
		RetryDelay:  DefaultRetryDelay,
	}
}

// AddressFromHostPort builds a node URL from the host and port pair used by
// the ELASTICSEARCH_HOST and ELASTICSEARCH_PORT settings. A host that already
// carries a scheme is kept as is.
func AddressFromHostPort(host string, port int) string {
	host = strings.TrimSuffix(strings.TrimSpace(host), "/")
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	if port > 0 {
		return fmt.Sprintf("%s:%d", host, port)
	}
	return host
}

// Normalize fills zero values with defaults.
func (c *Config) Normalize() {
	if c.Index == "" {
		c.Index = DefaultIndex
	}
	if c.Size == 0 {
		c.Size = DefaultSize
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = DefaultRetryDelay
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if len(c.Addresses) == 0 {
		return errors.New("elastic config: Addresses is required")
	}
	for _, addr := range c.Addresses {
		if strings.TrimSpace(addr) == "" {
			return errors.New("elastic config: Addresses must not contain blank entries")
		}
	}
	if strings.TrimSpace(c.Index) == "" {
		return errors.New("elastic config: Index is required")
	}
	if c.Size <= 0 {
		return errors.New("elastic config: Size must be positive")
	}
	if c.MaxAttempts <= 0 {
		return errors.New("elastic config: MaxAttempts must be positive")
	}
	if c.RetryDelay < 0 {
		return errors.New("elastic config: RetryDelay must not be negative")
	}
	return nil
}
