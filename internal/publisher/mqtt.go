package publisher

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/jgoulah/energyopt/internal/config"
	"github.com/jgoulah/energyopt/pkg/models"
)

const publishTimeout = 10 * time.Second

// client is the subset of mqtt.Client the publisher needs
type client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	IsConnected() bool
	Disconnect(quiesce uint)
}

// Publisher sends reports to an MQTT broker
type Publisher struct {
	client      client
	topicPrefix string
	now         func() time.Time
}

// New connects to the configured MQTT broker
func New(mqttCfg config.MQTTConfig) (*Publisher, error) {
	if !mqttCfg.Enabled {
		return nil, fmt.Errorf("MQTT publishing is not enabled in config")
	}
	if mqttCfg.Broker == "" {
		return nil, fmt.Errorf("MQTT broker address is required when enabled")
	}

	// Configure MQTT client options
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s", mqttCfg.Broker))
	opts.SetClientID("energyopt-" + uuid.NewString()[:8])
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(10 * time.Second)

	if mqttCfg.Username != "" {
		opts.SetUsername(mqttCfg.Username)
	}
	if mqttCfg.Password != "" {
		opts.SetPassword(mqttCfg.Password)
	}

	// Create and connect client
	c := mqtt.NewClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
	}

	return newWithClient(c, mqttCfg.GetTopicPrefix()), nil
}

func newWithClient(c client, topicPrefix string) *Publisher {
	return &Publisher{client: c, topicPrefix: topicPrefix, now: time.Now}
}

// ReportPayload is the JSON document published on <prefix>/report
type ReportPayload struct {
	RunID           string                  `json:"run_id"`
	GeneratedAt     string                  `json:"generated_at"`
	TotalKWh        float64                 `json:"total_kwh"`
	Days            []models.DailyAverage   `json:"days"`
	Recommendations []models.Recommendation `json:"recommendations"`
}

// Message is a single MQTT publication
type Message struct {
	Topic    string
	Payload  []byte
	Retained bool
}

// BuildMessages returns the report document followed by one message per day
func BuildMessages(topicPrefix, runID string, generatedAt time.Time, avgs models.DailyAverages, recs []models.Recommendation) ([]Message, error) {
	payload := ReportPayload{
		RunID:           runID,
		GeneratedAt:     generatedAt.Format(time.RFC3339),
		TotalKWh:        avgs.Total(),
		Days:            avgs,
		Recommendations: recs,
	}
	if payload.Days == nil {
		payload.Days = models.DailyAverages{}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}

	msgs := []Message{{Topic: topicPrefix + "/report", Payload: body, Retained: true}}
	for _, avg := range avgs {
		msgs = append(msgs, Message{
			Topic:    fmt.Sprintf("%s/%s/average_kwh", topicPrefix, strings.ToLower(avg.Day)),
			Payload:  []byte(fmt.Sprintf("%.2f", avg.KWh)),
			Retained: true,
		})
	}
	return msgs, nil
}

// Publish sends the report and per-day averages, returning the run id used
func (p *Publisher) Publish(avgs models.DailyAverages, recs []models.Recommendation) (string, error) {
	runID := uuid.NewString()
	msgs, err := BuildMessages(p.topicPrefix, runID, p.now().UTC(), avgs, recs)
	if err != nil {
		return "", err
	}

	for _, msg := range msgs {
		token := p.client.Publish(msg.Topic, 1, msg.Retained, msg.Payload)
		if !token.WaitTimeout(publishTimeout) {
			return "", fmt.Errorf("publishing to %s: timed out after %s", msg.Topic, publishTimeout)
		}
		if err := token.Error(); err != nil {
			return "", fmt.Errorf("publishing to %s: %w", msg.Topic, err)
		}
	}
	return runID, nil
}

// Close disconnects from the MQTT broker
func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}
