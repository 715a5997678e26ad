package main

import (
	"bufio"
	"fmt"
	"io"
)

const exitCommand = "EXIT"

// watchConsole - reads operator commands line by line.
// Returned channel is closed when EXIT is typed. End of input stops watching.
func watchConsole(in io.Reader, out io.Writer) <-chan struct{} {
	exit := make(chan struct{})
	go func() {
		lines := bufio.NewScanner(in)
		for lines.Scan() {
			if lines.Text() == exitCommand {
				close(exit)
				return
			}
			fmt.Fprintln(out, "To close server type", exitCommand)
		}
	}()
	return exit
}
