// Command server wires the broker, the profile repository, the
// lobby, and the WebSocket transport bridge into one running process
// (spec §9: injected collaborators, no global singletons reached for
// from deep components).
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"holdem-broker/broker"
	"holdem-broker/holdem"
	"holdem-broker/lobby"
	"holdem-broker/repository"
	"holdem-broker/transport"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func main() {
	b, brokerMode, err := broker.NewFromEnv()
	if err != nil {
		log.Fatalf("[Server] failed to init broker: %v", err)
	}

	repo, repoMode, err := repository.NewRepositoryFromEnv()
	if err != nil {
		log.Fatalf("[Server] failed to init repository: %v", err)
	}

	cfg := holdem.DefaultConfig(roomSizeFromEnv(), smallBlindFromEnv(), bigBlindFromEnv())
	mode := holdem.NewConfigFactory(cfg)

	lby := lobby.New(b, repo, mode, cfg.MaxPlayers)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go lby.Run(ctx)

	bridge := transport.New(b)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("[Server] upgrade error: %v", err)
			return
		}
		go func() {
			if err := bridge.Serve(ctx, conn); err != nil {
				log.Printf("[Server] bridge session ended: %v", err)
			}
		}()
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	addr := strings.TrimSpace(os.Getenv("SERVER_ADDR"))
	if addr == "" {
		addr = ":18080"
	}
	log.Printf("[Server] broker mode: %s", brokerMode)
	log.Printf("[Server] repository mode: %s", repoMode)
	log.Printf("[Server] starting WebSocket server on %s", addr)
	if err := http.ListenAndServe(addr, withCORS(mux)); err != nil {
		log.Fatalf("[Server] failed to start: %v", err)
	}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func roomSizeFromEnv() int {
	return intFromEnv("ROOM_SIZE", 6)
}

func smallBlindFromEnv() int64 {
	return int64(intFromEnv("SMALL_BLIND", 5))
}

func bigBlindFromEnv() int64 {
	return int64(intFromEnv("BIG_BLIND", 10))
}

func intFromEnv(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
