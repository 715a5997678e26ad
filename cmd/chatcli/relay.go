package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
)

const (
	closedNotice = "* System * - Either you have left the chat or server has been closed."
	quitNotice   = "* System * - Server has quit."
)

// receive - prints lines from the server until the stream ends.
// Returned channel is closed after the closing notice is printed.
func receive(server io.Reader, out io.Writer) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		lines := bufio.NewScanner(server)
		for lines.Scan() {
			fmt.Fprintln(out, lines.Text())
		}
		if err := lines.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
			fmt.Fprintln(out, quitNotice)
			return
		}
		fmt.Fprintln(out, closedNotice)
	}()
	return done
}

// transmit - sends lines typed by user to the server until input ends or sending fails.
func transmit(in io.Reader, server io.Writer) error {
	lines := bufio.NewScanner(in)
	for lines.Scan() {
		if _, err := fmt.Fprintln(server, lines.Text()); err != nil {
			return err
		}
	}
	return lines.Err()
}
