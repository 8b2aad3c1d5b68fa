// Command swapwatch tails the swap event stream for a user. It logs in with
// email and password, connects to the WebSocket endpoint, and prints every
// swap lifecycle event it receives.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

func main() {
	host := flag.String("host", "localhost:8480", "API server host")
	email := flag.String("email", "", "User email")
	password := flag.String("password", "", "User password")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("Both -email and -password are required")
	}

	token, err := login(*host, *email, *password)
	if err != nil {
		log.Fatalf("Login failed: %v", err)
	}
	log.Printf("Logged in as %s", *email)

	wsURL := url.URL{
		Scheme:   "ws",
		Host:     *host,
		Path:     "/api/ws",
		RawQuery: "token=" + url.QueryEscape(token),
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL.String(), nil)
	if err != nil {
		log.Fatalf("WebSocket connection failed: %v", err)
	}
	defer func() { _ = conn.Close() }()
	log.Println("Connected, waiting for swap events...")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				log.Printf("Read error: %v", err)
				return
			}
			printEvent(message)
		}
	}()

	select {
	case <-done:
	case <-interrupt:
		log.Println("Closing connection...")
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
	}
}

func login(host, email, password string) (string, error) {
	loginURL := fmt.Sprintf("http://%s/api/auth/login", host)
	payload := map[string]string{
		"email":    email,
		"password": password,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(loginURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.Token, nil
}

func printEvent(message []byte) {
	var event struct {
		Type   string `json:"type"`
		SwapID uint   `json:"swap_id"`
	}
	if err := json.Unmarshal(message, &event); err != nil || event.Type == "" {
		log.Printf("<- %s", message)
		return
	}
	if event.SwapID == 0 {
		log.Printf("<- %s", event.Type)
		return
	}
	log.Printf("<- %s (swap %d)", event.Type, event.SwapID)
}
