// Package `chatsrv` implements server application for line-oriented chat over TCP.
//
// Every client is asked for a nickname, then each line it sends is relayed
// to all connected clients. Client leaves the chat with the *EXIT line.
// Type EXIT into the server console to shut it down.
//
// To compile chat server locally, run from package directory:
//
//	go install .
//
// Or quickly launch server with command:
//
//	go run . -port 14001
//
// Optionally the same chat is served over WebSocket:
//
//	go run . -port 14001 -ws-port 14080
package main
