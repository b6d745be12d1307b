package relay

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/clipcast/clipcast/internal/clipboard"
	"github.com/clipcast/clipcast/internal/config"
)

const (
	handshakeTimeout = 15 * time.Second
	writeTimeout     = 10 * time.Second
)

// ErrIdleTimeout is returned by Run when no frame of any kind arrived within
// the configured idle timeout.
var ErrIdleTimeout = errors.New("no traffic from relay")

// Session owns one live WebSocket subscription to a topic. It is created by
// Connect, driven to completion by Run, and never reused: on any terminal
// outcome the supervisor builds a fresh one.
type Session struct {
	cfg     *config.Config
	sink    clipboard.Sink
	conn    *websocket.Conn
	verbose bool

	// lastTraffic is the unix-nano timestamp of the last inbound frame,
	// data or control. The read side writes it, the watchdog reads it.
	lastTraffic atomic.Int64
}

// Connect performs the WebSocket handshake against the configured topic
// endpoint, attaching the bearer token when one is set. It does not retry;
// the supervisor owns retry.
func Connect(ctx context.Context, cfg *config.Config, sink clipboard.Sink, verbose bool) (*Session, error) {
	header := http.Header{}
	if cfg.Token != "" {
		header.Set("Authorization", "Bearer "+cfg.Token)
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
		Proxy:            http.ProxyFromEnvironment,
	}

	conn, resp, err := dialer.DialContext(ctx, cfg.URL(), header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: %w (%s)", cfg.URL(), err, resp.Status)
		}
		return nil, fmt.Errorf("dial %s: %w", cfg.URL(), err)
	}

	s := &Session{
		cfg:     cfg,
		sink:    sink,
		conn:    conn,
		verbose: verbose,
	}
	s.touch()

	log.Printf("Connected to %s topic=%s idle-timeout=%v", cfg.Server, cfg.Topic, cfg.IdleTimeout())
	return s, nil
}

// frame is one receive-loop result handed from the reader goroutine to Run.
type frame struct {
	msgType int
	data    []byte
	err     error
}

// Run drives the session until a terminal outcome: a nil return means the
// peer closed cleanly; any error means the session is dead and must be
// replaced. Two activities race: the receive loop and an idle watchdog that
// audits traffic recency. The watchdog sends nothing itself; pings and pongs
// from the peer count as traffic.
func (s *Session) Run(ctx context.Context) error {
	defer s.conn.Close()

	s.conn.SetPingHandler(func(payload string) error {
		s.touch()
		if s.verbose {
			log.Printf("ping from relay (%d bytes), replying pong", len(payload))
		}
		return s.conn.WriteControl(websocket.PongMessage, []byte(payload), time.Now().Add(writeTimeout))
	})
	s.conn.SetPongHandler(func(string) error {
		s.touch()
		return nil
	})

	frames := make(chan frame)
	done := make(chan struct{})
	defer close(done)
	go s.readLoop(frames, done)

	watchdog := time.NewTicker(s.cfg.IdleTimeout())
	defer watchdog.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case f := <-frames:
			if f.err != nil {
				// Only a close frame actually received from the peer is a
				// clean close. gorilla synthesizes a CloseError with code
				// 1006 when the connection drops without one; that is a
				// transport failure.
				var closeErr *websocket.CloseError
				if errors.As(f.err, &closeErr) && closeErr.Code != websocket.CloseAbnormalClosure {
					if s.verbose {
						log.Printf("close frame from relay: %v", closeErr)
					}
					return nil
				}
				return fmt.Errorf("read: %w", f.err)
			}
			s.touch()
			if f.msgType == websocket.TextMessage {
				s.route(f.data)
			}

		case <-watchdog.C:
			if idle := time.Since(s.lastTrafficTime()); idle > s.cfg.IdleTimeout() {
				return fmt.Errorf("%w in %v", ErrIdleTimeout, idle.Round(time.Second))
			}
		}
	}
}

// readLoop feeds inbound frames to Run. Control frames are consumed inside
// ReadMessage by the handlers installed above; only data frames and the
// terminal error come through the channel.
func (s *Session) readLoop(frames chan<- frame, done <-chan struct{}) {
	for {
		msgType, data, err := s.conn.ReadMessage()
		select {
		case frames <- frame{msgType: msgType, data: data, err: err}:
		case <-done:
			return
		}
		if err != nil {
			return
		}
	}
}

// route decodes one data frame and, when it is a message for the subscribed
// topic, hands the payload to the sink. The sink call is fire-and-forget: a
// slow or failing clipboard write never stalls the receive loop, and
// concurrent deliveries are not serialized.
func (s *Session) route(data []byte) {
	env, err := decodeEnvelope(data)
	if err != nil {
		log.Printf("Discarding malformed frame: %v", err)
		return
	}

	if !env.dispatchable(s.cfg.Topic) {
		if s.verbose {
			log.Printf("Ignoring event=%q topic=%q", env.Event, env.Topic)
		}
		return
	}

	if s.verbose {
		log.Printf("Dispatching message from topic=%q to clipboard", env.Topic)
	}

	text := *env.Message
	go func() {
		if err := s.sink.Deliver(text); err != nil {
			log.Printf("Clipboard delivery failed: %v", err)
		}
	}()
}

func (s *Session) touch() {
	s.lastTraffic.Store(time.Now().UnixNano())
}

func (s *Session) lastTrafficTime() time.Time {
	return time.Unix(0, s.lastTraffic.Load())
}
