package report

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/viant/vehiclepos/search"
)

// DefaultTopic is where results are published unless configured otherwise.
const DefaultTopic = "vehiclepos/nearest"

// publishClient is the part of mqtt.Client the publisher needs.
type publishClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Connect dials an MQTT broker such as tcp://localhost:1883.
func Connect(broker, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("report: connect %s: %w", broker, token.Error())
	}
	return client, nil
}

// Publisher sends one JSON message per result to an MQTT topic.
type Publisher struct {
	client publishClient
	topic  string
	qos    byte
}

// NewPublisher creates a Publisher. An empty topic selects DefaultTopic.
func NewPublisher(client mqtt.Client, topic string) *Publisher {
	return newPublisher(client, topic)
}

func newPublisher(client publishClient, topic string) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{client: client, topic: topic}
}

// Publish sends results in order and stops at the first failure.
func (p *Publisher) Publish(results []search.Result) error {
	for i, r := range results {
		payload, err := json.Marshal(NewMessage(r))
		if err != nil {
			return err
		}
		token := p.client.Publish(p.topic, p.qos, false, payload)
		token.Wait()
		if err := token.Error(); err != nil {
			return fmt.Errorf("report: publish result %d to %s: %w", i, p.topic, err)
		}
	}
	return nil
}
