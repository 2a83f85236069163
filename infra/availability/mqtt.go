// Package availability feeds live stall counts from an MQTT broker into the
// station catalog. The feed is a soft overlay: stations without live data
// keep their static stall counts.
package availability

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/ecarion/voltroute/core/logger"
)

// Client is the subset of the paho client the feed uses.
type Client interface {
	IsConnected() bool
	Disconnect(uint)
	Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token
}

// StatusMessage is one stall-count update published by a station operator.
type StatusMessage struct {
	StationID       string `json:"station_id"`
	AvailableStalls int    `json:"available_stalls"`
	TotalStalls     int    `json:"total_stalls"`
}

type stallCount struct {
	available int
	total     int
}

// Feed subscribes to a status topic and serves the latest stall counts. It
// implements catalog.AvailabilityOverlay and is safe for concurrent reads.
type Feed struct {
	client Client
	log    logger.Logger

	mu     sync.RWMutex
	stalls map[string]stallCount
}

// Connect dials the broker and subscribes to topic. The topic typically
// carries a wildcard segment for the station id.
func Connect(broker, clientID, topic string, tlsConfig *tls.Config, log logger.Logger) (*Feed, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetTLSConfig(tlsConfig).
		SetConnectTimeout(5 * time.Second).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("availability: connect %s: %w", broker, token.Error())
	}

	f := newFeed(client, log)
	if err := f.subscribe(topic); err != nil {
		client.Disconnect(250)
		return nil, err
	}
	return f, nil
}

func newFeed(client Client, log logger.Logger) *Feed {
	return &Feed{
		client: client,
		log:    log,
		stalls: make(map[string]stallCount),
	}
}

func (f *Feed) subscribe(topic string) error {
	token := f.client.Subscribe(topic, 1, f.handle)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("availability: subscribe %s: %w", topic, err)
	}
	return nil
}

func (f *Feed) handle(_ mqtt.Client, msg mqtt.Message) {
	var status StatusMessage
	if err := json.Unmarshal(msg.Payload(), &status); err != nil {
		f.log.Warnf("availability: invalid status on %s: %v", msg.Topic(), err)
		return
	}
	if status.StationID == "" || status.TotalStalls <= 0 || status.AvailableStalls < 0 {
		f.log.Warnf("availability: rejected status for %q", status.StationID)
		return
	}
	f.mu.Lock()
	f.stalls[status.StationID] = stallCount{
		available: status.AvailableStalls,
		total:     status.TotalStalls,
	}
	f.mu.Unlock()
	f.log.Debugf("availability: %s %d/%d stalls", status.StationID, status.AvailableStalls, status.TotalStalls)
}

// Availability returns the latest stall counts for a station, reporting ok
// false when no update has been seen.
func (f *Feed) Availability(stationID string) (available, total int, ok bool) {
	f.mu.RLock()
	c, seen := f.stalls[stationID]
	f.mu.RUnlock()
	return c.available, c.total, seen
}

// Close disconnects from the broker.
func (f *Feed) Close() {
	if f.client.IsConnected() {
		f.client.Disconnect(250)
	}
}
