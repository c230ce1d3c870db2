// Package config loads canvaswire.json, the client and bridge tooling
// configuration. Environment variables prefixed CANVASWIRE_ override the
// file for the most common deployment knobs.
package config

import (
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/canvaswire/canvaswire/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "canvaswire.json"

	// DefaultStreamPath is the default frame channel device path.
	DefaultStreamPath = "/dev/canvas"

	// DefaultMailboxDir is the default query rendezvous directory.
	DefaultMailboxDir = "/.canvas"

	// DefaultBridgeAddr is the default bridge listen address.
	DefaultBridgeAddr = ":8080"
)

// Transport kinds accepted in canvaswire.json.
const (
	KindStream    = "stream"
	KindMailbox   = "mailbox"
	KindWebSocket = "websocket"
)

// Config is the complete canvaswire.json configuration.
type Config struct {
	// Transport selects and configures the frame channel.
	Transport TransportConfig `json:"transport,omitempty"`

	// Query configures the query sub-protocol.
	Query QueryConfig `json:"query,omitempty"`

	// Bridge configures the renderer-side bridge server.
	Bridge BridgeConfig `json:"bridge,omitempty"`

	// configPath stores the path the config was loaded from.
	configPath string
}

// TransportConfig selects the frame channel.
type TransportConfig struct {
	// Kind is one of "stream", "mailbox" or "websocket".
	Kind string `json:"kind,omitempty"`

	// StreamPath is the byte channel path for the stream kind.
	StreamPath string `json:"streamPath,omitempty"`

	// MailboxDir is the rendezvous directory for the mailbox kind.
	MailboxDir string `json:"mailboxDir,omitempty"`

	// URL is the renderer endpoint for the websocket kind.
	URL string `json:"url,omitempty"`
}

// QueryConfig configures reply-bearing queries.
type QueryConfig struct {
	// TimeoutMS bounds how long a handshake waits for a reply.
	// 0 means the transport default (one second).
	TimeoutMS int `json:"timeoutMs,omitempty"`
}

// BridgeConfig configures the bridge server.
type BridgeConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty"`

	// CaptureDir persists session captures on disk when set.
	CaptureDir string `json:"captureDir,omitempty"`

	// S3Bucket persists session captures to S3 when set. Takes precedence
	// over CaptureDir.
	S3Bucket string `json:"s3Bucket,omitempty"`

	// S3Prefix namespaces the capture object keys.
	S3Prefix string `json:"s3Prefix,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Transport: TransportConfig{
			Kind:       KindStream,
			StreamPath: DefaultStreamPath,
			MailboxDir: DefaultMailboxDir,
		},
		Bridge: BridgeConfig{
			Addr:     DefaultBridgeAddr,
			S3Prefix: "captures/",
		},
	}
}

// Load reads configuration from canvaswire.json in dir, falling back to
// defaults when the file does not exist.
func Load(dir string) (*Config, error) {
	cfg, err := LoadFile(filepath.Join(dir, ConfigFileName))
	if err != nil {
		var ce *errors.Error
		if stderrors.As(err, &ce) && ce.Code == "E101" {
			cfg = New()
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads configuration from an explicit file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E101").
				WithDetail("looked in " + filepath.Dir(path))
		}
		return nil, errors.New("E102").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E102").WithDetail(err.Error())
	}
	cfg.configPath = path
	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E102").Wrap(err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New("E102").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path the config was loaded from.
func (c *Config) Path() string { return c.configPath }

func (c *Config) applyDefaults() {
	if c.Transport.Kind == "" {
		c.Transport.Kind = KindStream
	}
	if c.Transport.StreamPath == "" {
		c.Transport.StreamPath = DefaultStreamPath
	}
	if c.Transport.MailboxDir == "" {
		c.Transport.MailboxDir = DefaultMailboxDir
	}
	if c.Bridge.Addr == "" {
		c.Bridge.Addr = DefaultBridgeAddr
	}
	if c.Bridge.S3Prefix == "" {
		c.Bridge.S3Prefix = "captures/"
	}
}

// applyEnv overrides file values from the environment.
func (c *Config) applyEnv() {
	if v := os.Getenv("CANVASWIRE_TRANSPORT"); v != "" {
		c.Transport.Kind = v
	}
	if v := os.Getenv("CANVASWIRE_STREAM_PATH"); v != "" {
		c.Transport.StreamPath = v
	}
	if v := os.Getenv("CANVASWIRE_MAILBOX_DIR"); v != "" {
		c.Transport.MailboxDir = v
	}
	if v := os.Getenv("CANVASWIRE_URL"); v != "" {
		c.Transport.URL = v
	}
	if v := os.Getenv("CANVASWIRE_BRIDGE_ADDR"); v != "" {
		c.Bridge.Addr = v
	}
	if v := os.Getenv("CANVASWIRE_QUERY_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			c.Query.TimeoutMS = ms
		}
	}
}

func (c *Config) validate() error {
	switch c.Transport.Kind {
	case KindStream, KindMailbox, KindWebSocket:
		return nil
	default:
		return errors.New("E103").
			WithDetail("transport.kind = " + strconv.Quote(c.Transport.Kind))
	}
}
