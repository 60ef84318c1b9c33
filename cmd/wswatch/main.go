// Command wswatch tails the realtime forum feed. With several clients it
// doubles as a fan-out load check for the websocket hub.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/url"
	"os"
	"os/signal"
	"sort"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

// Metrics tracks connection and event counts across clients.
type Metrics struct {
	ConnectionsAttempted int64
	ConnectionsSuccess   int64
	ConnectionsFailed    int64
	EventsReceived       int64
	Malformed            int64

	mu     sync.Mutex
	byType map[string]int64
}

func (m *Metrics) countEvent(eventType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.byType == nil {
		m.byType = make(map[string]int64)
	}
	m.byType[eventType]++
}

var metrics Metrics

func main() {
	host := flag.String("host", "localhost:3000", "API server host")
	secure := flag.Bool("tls", false, "Use wss://")
	clients := flag.Int("clients", 1, "Number of concurrent clients")
	duration := flag.Duration("duration", 0, "Stop after this long (0 waits for Ctrl-C)")
	quiet := flag.Bool("quiet", false, "Do not print events, only the summary")
	flag.Parse()

	scheme := "ws"
	if *secure {
		scheme = "wss"
	}
	u := url.URL{Scheme: scheme, Host: *host, Path: "/ws/foro"}
	log.Printf("watching %s with %d client(s)", u.String(), *clients)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup
	stopChan := make(chan struct{})

	for i := 0; i < *clients; i++ {
		wg.Add(1)
		// Only the first client prints, the rest just count.
		go runClient(u.String(), i == 0 && !*quiet, stopChan, &wg)
		time.Sleep(10 * time.Millisecond)
	}

	var timeout <-chan time.Time
	if *duration > 0 {
		timeout = time.After(*duration)
	}
	select {
	case <-timeout:
		log.Println("duration reached")
	case <-interrupt:
		log.Println("interrupted")
	}

	close(stopChan)
	wg.Wait()
	printMetrics()
}

func runClient(target string, verbose bool, stopChan <-chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()
	atomic.AddInt64(&metrics.ConnectionsAttempted, 1)

	c, resp, err := websocket.DefaultDialer.Dial(target, nil)
	if err != nil {
		atomic.AddInt64(&metrics.ConnectionsFailed, 1)
		if verbose {
			log.Printf("dial failed: %v", err)
		}
		return
	}
	if resp != nil && resp.Body != nil {
		defer func() { _ = resp.Body.Close() }()
	}
	defer func() { _ = c.Close() }()
	atomic.AddInt64(&metrics.ConnectionsSuccess, 1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				if verbose && !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					log.Printf("connection closed: %v", err)
				}
				return
			}

			var event struct {
				Type    string          `json:"type"`
				Payload json.RawMessage `json:"payload"`
			}
			if err := json.Unmarshal(msg, &event); err != nil || event.Type == "" {
				atomic.AddInt64(&metrics.Malformed, 1)
				continue
			}
			atomic.AddInt64(&metrics.EventsReceived, 1)
			metrics.countEvent(event.Type)
			if verbose {
				log.Printf("%-16s %s", event.Type, event.Payload)
			}
		}
	}()

	select {
	case <-stopChan:
		_ = c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	case <-done:
	}
}

func printMetrics() {
	log.Println("summary")
	log.Printf("connections attempted: %d", atomic.LoadInt64(&metrics.ConnectionsAttempted))
	log.Printf("connections successful: %d", atomic.LoadInt64(&metrics.ConnectionsSuccess))
	log.Printf("connections failed: %d", atomic.LoadInt64(&metrics.ConnectionsFailed))
	log.Printf("events received: %d", atomic.LoadInt64(&metrics.EventsReceived))
	log.Printf("malformed messages: %d", atomic.LoadInt64(&metrics.Malformed))

	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	types := make([]string, 0, len(metrics.byType))
	for t := range metrics.byType {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		log.Printf("  %s: %d", t, metrics.byType[t])
	}
}
