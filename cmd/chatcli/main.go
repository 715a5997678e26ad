package main

import (
	"fmt"
	"net"
	"os"
	"strconv"
)

func main() {
	config, ok := configure(os.Args[1:], os.Stderr)
	if !ok {
		os.Exit(0)
	}

	conn, err := net.Dial("tcp", net.JoinHostPort(config.Address, strconv.Itoa(int(config.Port))))
	if err != nil {
		fmt.Println("* System Error * - Could not connect to server")
		fmt.Println("Please try to connect again with a different address and/or port. " +
			"This can be done by passing the arguments -address and -port.")
		os.Exit(0)
	}

	done := receive(conn, os.Stdout)
	go func() {
		transmit(os.Stdin, conn)
		// no more input, nothing to wait for
		conn.Close()
	}()
	<-done
	conn.Close()
}
