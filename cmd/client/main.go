/*
Package main is a small interactive terminal client for the linechat server.

A reader goroutine prints every server line to stdout while the main loop sends
stdin lines to the server. The server address is taken from CHAT_SERVER_ADDR,
defaulting to the server's default bind address.
*/
package main

import (
	"bufio"
	"fmt"
	"net"
	"os"
)

const defaultServerAddr = "127.0.0.1:34255"

func main() {
	addr := os.Getenv("CHAT_SERVER_ADDR")
	if addr == "" {
		addr = defaultServerAddr
	}

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to %s: %v\n", addr, err)
		os.Exit(1)
	}
	defer conn.Close()

	fmt.Printf("Connected to %s. Type /help for commands.\n", addr)

	done := make(chan struct{})

	// Print every server line until the connection closes.
	go func() {
		defer close(done)

		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			fmt.Println(scanner.Text())
		}

		fmt.Println("Server disconnected")
	}()

	// Send stdin lines to the server.
	stdin := bufio.NewScanner(os.Stdin)
	for stdin.Scan() {
		select {
		case <-done:
			return
		default:
		}

		if _, writeErr := fmt.Fprintf(conn, "%s\n", stdin.Text()); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Failed to send: %v\n", writeErr)
			return
		}
	}

	<-done
}
