// Package `chatcli` implements terminal client for the chat server.
//
// Lines typed into the terminal go to the server, lines from the server are printed.
// Type *EXIT to leave the chat.
//
//	go run . -address localhost -port 14001
package main
