package mqtt

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// mockClient implements pahoClient for tests
type mockClient struct {
	opts      *paho.ClientOptions
	published []struct {
		topic    string
		qos      byte
		retained bool
		payload  []byte
	}
	publishErrs []error
	connectErr  error
}

func (m *mockClient) IsConnected() bool { return true }
func (m *mockClient) Connect() paho.Token {
	if m.connectErr != nil {
		return &dummyToken{err: m.connectErr}
	}
	return &dummyToken{}
}
func (m *mockClient) Disconnect(uint) {}
func (m *mockClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	m.published = append(m.published, struct {
		topic    string
		qos      byte
		retained bool
		payload  []byte
	}{topic, qos, retained, payload.([]byte)})
	if len(m.publishErrs) > 0 {
		err := m.publishErrs[0]
		m.publishErrs = m.publishErrs[1:]
		return &dummyToken{err: err}
	}
	return &dummyToken{}
}

type dummyToken struct{ err error }

func (d dummyToken) Wait() bool                     { return true }
func (d dummyToken) WaitTimeout(time.Duration) bool { return true }
func (d dummyToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (d dummyToken) Error() error { return d.err }

func withMock(mc *mockClient) func() {
	newMQTTClient = func(o *paho.ClientOptions) pahoClient { mc.opts = o; return mc }
	return func() {
		newMQTTClient = func(opts *paho.ClientOptions) pahoClient { return paho.NewClient(opts) }
	}
}

func TestPublishSnapshotTopicAndPayload(t *testing.T) {
	mc := &mockClient{}
	defer withMock(mc)()
	pub, err := NewPublisher(Config{Enabled: true, Broker: "tcp://localhost:1883", QoS: 1})
	if err != nil {
		t.Fatalf("publisher: %v", err)
	}
	snap := Snapshot{StationID: "ST42", Label: "busy", Predicted: 5, Ratio: 1.25, HasRatio: true, At: time.Now()}
	if err := pub.PublishSnapshot(snap); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(mc.published) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(mc.published))
	}
	got := mc.published[0]
	if got.topic != "stations/ST42/congestion" {
		t.Fatalf("topic %q", got.topic)
	}
	if got.qos != 1 || !got.retained {
		t.Fatalf("qos/retained not set")
	}
	var decoded Snapshot
	if err := json.Unmarshal(got.payload, &decoded); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if decoded.StationID != "ST42" || decoded.Label != "busy" || decoded.Predicted != 5 {
		t.Fatalf("payload mismatch: %+v", decoded)
	}
}

func TestPublishSnapshotError(t *testing.T) {
	mc := &mockClient{publishErrs: []error{fmt.Errorf("net fail")}}
	defer withMock(mc)()
	pub, err := NewPublisher(Config{Enabled: true, Broker: "tcp://localhost:1883"})
	if err != nil {
		t.Fatalf("publisher: %v", err)
	}
	if err := pub.PublishSnapshot(Snapshot{StationID: "ST1"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNewPublisherConnectError(t *testing.T) {
	mc := &mockClient{connectErr: fmt.Errorf("refused")}
	defer withMock(mc)()
	if _, err := NewPublisher(Config{Enabled: true, Broker: "tcp://localhost:1883"}); err == nil {
		t.Fatalf("expected connect error")
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (Config{Enabled: false}).Validate(); err != nil {
		t.Fatalf("disabled config should validate: %v", err)
	}
	if err := (Config{Enabled: true}).Validate(); err == nil {
		t.Fatalf("missing broker should fail")
	}
}
