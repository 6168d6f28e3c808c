package websocket

import (
	"context"
	"net/http"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// PayloadFunc returns the value pushed to dashboard clients, or nil when no
// data is available yet.
type PayloadFunc func() any

// Config holds hub configuration.
type Config struct {
	PushInterval   time.Duration // Periodic resend of the latest payload
	PingInterval   time.Duration // Keepalive pings to each client
	WriteTimeout   time.Duration
	SendBufferSize int // Pending messages per client before it is dropped
	Payload        PayloadFunc
	Logger         *zap.Logger
}

// Hub serves dashboard websocket clients. Each client receives the current
// payload on connect, again every push interval, and whenever Broadcast is
// called.
type Hub struct {
	config   Config
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new hub.
func New(cfg Config) *Hub {
	if cfg.PushInterval <= 0 {
		cfg.PushInterval = 5 * time.Second
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = 30 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	if cfg.SendBufferSize <= 0 {
		cfg.SendBufferSize = 8
	}
	if cfg.Payload == nil {
		cfg.Payload = func() any { return nil }
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Hub{
		config: cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start starts the periodic push loop.
func (h *Hub) Start() {
	h.logger.Info("websocket-hub-starting",
		zap.Duration("push-interval", h.config.PushInterval),
		zap.Duration("ping-interval", h.config.PingInterval))

	h.wg.Add(1)
	go h.pushLoop()
}

func (h *Hub) pushLoop() {
	defer h.wg.Done()

	ticker := time.NewTicker(h.config.PushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return
		case <-ticker.C:
			h.Broadcast(h.config.Payload())
		}
	}
}

// ServeHTTP upgrades the request and registers the connection as a client.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket-upgrade-failed", zap.Error(err))
		return
	}

	c := newClient(h, conn)

	msg, err := encode(h.config.Payload())
	if err != nil {
		h.logger.Error("payload-encode-failed", zap.Error(err))
		conn.Close()
		return
	}
	c.send <- msg

	h.register(c)

	h.wg.Add(2)
	go c.writeLoop()
	go c.readLoop()
}

// Broadcast sends v to every connected client. A nil v is sent as {}.
func (h *Hub) Broadcast(v any) {
	msg, err := encode(v)
	if err != nil {
		h.logger.Error("payload-encode-failed", zap.Error(err))
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	BroadcastsTotal.Inc()
	for _, c := range clients {
		select {
		case c.send <- msg:
		default:
			MessagesDroppedTotal.WithLabelValues("client_slow").Inc()
			h.logger.Warn("websocket-client-too-slow", zap.String("remote", c.remote))
			c.close()
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()

	ActiveConnections.Set(float64(count))
	h.logger.Info("websocket-client-connected", zap.String("remote", c.remote), zap.Int("clients", count))
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	count := len(h.clients)
	h.mu.Unlock()

	ActiveConnections.Set(float64(count))
	ConnectionDuration.Observe(time.Since(c.connectedAt).Seconds())
	h.logger.Info("websocket-client-disconnected", zap.String("remote", c.remote), zap.Int("clients", count))
}

// Close disconnects every client and stops the push loop.
func (h *Hub) Close() error {
	h.logger.Info("closing-websocket-hub")

	h.cancel()

	h.mu.RLock()
	for c := range h.clients {
		c.close()
	}
	h.mu.RUnlock()

	h.wg.Wait()

	ActiveConnections.Set(0)
	h.logger.Info("websocket-hub-closed")
	return nil
}

func encode(v any) ([]byte, error) {
	if v == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(v)
}
