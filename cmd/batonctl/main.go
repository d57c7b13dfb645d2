// batonctl is an interactive client for poking at a running server.
//
// Each input line is a command name followed by key=value parameters:
//
//	> register name=Rin
//	> fight monster=goblin
//	> enter_dungeon dungeon=goblin_cave
//
// Responses and pushed events are printed as they arrive.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gorilla/websocket"
)

type request struct {
	ID      string         `json:"id,omitempty"`
	Command string         `json:"command"`
	Params  map[string]any `json:"params,omitempty"`
}

func main() {
	url := flag.String("url", "ws://localhost:8080/ws", "Server WebSocket URL")
	flag.Parse()

	conn, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", *url, err)
	}
	defer conn.Close()
	fmt.Printf("connected to %s\n", *url)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				fmt.Println("connection closed:", err)
				return
			}
			fmt.Println(prettyFrame(message))
			fmt.Print("> ")
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	seq := 0
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Print("> ")
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		req, err := parseLine(line, &seq)
		if err != nil {
			fmt.Println(err)
			fmt.Print("> ")
			continue
		}
		if err := conn.WriteJSON(req); err != nil {
			log.Fatalf("Failed to send: %v", err)
		}

		select {
		case <-done:
			return
		default:
		}
	}

	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// parseLine turns "fight monster=goblin" into a request frame.
func parseLine(line string, seq *int) (*request, error) {
	fields := strings.Fields(line)
	*seq++
	req := &request{
		ID:      fmt.Sprintf("%d", *seq),
		Command: fields[0],
	}

	for _, field := range fields[1:] {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return nil, fmt.Errorf("bad parameter %q, want key=value", field)
		}
		if req.Params == nil {
			req.Params = make(map[string]any)
		}
		req.Params[key] = value
	}
	return req, nil
}

// prettyFrame re-indents a server frame for the terminal.
func prettyFrame(raw []byte) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return string(raw)
	}
	return string(out)
}
