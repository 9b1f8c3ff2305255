// Package mqtt publishes derived congestion state to an MQTT broker so
// downstream consumers (dashboards, notification pipelines) can react to
// station state without polling the HTTP surface.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"chargecast/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Enabled   bool   `json:"enabled"`
	Broker    string `json:"broker"`
	ClientID  string `json:"client_id"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	QoS       byte   `json:"qos"`
	TopicBase string `json:"topic_base"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "chargecast"
	}
	if c.TopicBase == "" {
		c.TopicBase = "stations"
	}
}

// Validate checks mandatory fields when the publisher is enabled.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("broker is required")
	}
	return nil
}

// Snapshot is the congestion state published per station.
type Snapshot struct {
	StationID string    `json:"stationId"`
	Label     string    `json:"label"`
	Predicted int       `json:"predicted,omitempty"`
	Ratio     float64   `json:"ratio,omitempty"`
	HasRatio  bool      `json:"hasRatio"`
	At        time.Time `json:"at"`
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// Publisher writes congestion snapshots to the broker.
type Publisher struct {
	cli       pahoClient
	qos       byte
	topicBase string
	log       logger.Logger
}

// NewPublisher connects to the broker.
func NewPublisher(cfg Config) (*Publisher, error) {
	cfg.SetDefaults()
	log := logger.New("mqtt-publisher")
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.OnConnect = func(paho.Client) {
		log.Infof("MQTT connected")
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &Publisher{cli: c, qos: cfg.QoS, topicBase: cfg.TopicBase, log: log}, nil
}

// PublishSnapshot sends one congestion snapshot. Retained so late subscribers
// see the last known state of each station.
func (p *Publisher) PublishSnapshot(s Snapshot) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	topic := p.Topic(s.StationID)
	token := p.cli.Publish(topic, p.qos, true, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("publish %s: %w", topic, token.Error())
	}
	return nil
}

// Topic returns the snapshot topic for one station.
func (p *Publisher) Topic(stationID string) string {
	return p.topicBase + "/" + stationID + "/congestion"
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	if p.cli != nil && p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
}
