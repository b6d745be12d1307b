package relay

import (
	"encoding/json"
	"fmt"
)

// eventMessage is the only event kind that carries a publishable payload;
// everything else the relay sends (open, keepalive, poll_request) is dropped.
const eventMessage = "message"

// Envelope is the decoded JSON body of an inbound data frame. Fields beyond
// these are ignored.
type Envelope struct {
	Event   string  `json:"event"`
	Topic   string  `json:"topic"`
	Message *string `json:"message,omitempty"`
}

func decodeEnvelope(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return &env, nil
}

// dispatchable reports whether the envelope should reach the sink: a message
// event on the subscribed topic with a payload present.
func (e *Envelope) dispatchable(topic string) bool {
	return e.Event == eventMessage && e.Topic == topic && e.Message != nil
}
