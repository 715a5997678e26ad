package main

import (
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wtask/linechat/internal/chat"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config, ok := configure(os.Args[1:], os.Stderr)
	if !ok {
		os.Exit(0)
	}

	logger := stdlog.New(os.Stdout, "chatsrv:"+Version+" ", stdlog.Ldate|stdlog.Ltime)
	logger.Printf("Started with config: %+v", config)

	listener, err := chat.Listen(config.IPAddress, config.Port)
	if err != nil {
		logger.Println("ERR", err)
		fmt.Println("Could not set up server as port already in use. " +
			"Please run server again but with a different port. This can be done via the argument -port")
		os.Exit(0)
	}
	fmt.Println("Server is bound on port:", config.Port)

	server, err := chat.NewServer(
		chat.WithLogger(logger),
		chat.WithWriteTimeout(config.WriteTimeout),
	)
	if err != nil {
		logger.Println("ERR", "Can't start chat server:", err)
		listener.Close()
		os.Exit(1)
	}

	go func() {
		if err := server.Serve(listener); err != nil {
			logger.Println("ERR", "Serve:", err)
		}
	}()

	if config.WebSocketPort > 0 {
		wsListener, err := chat.Listen(config.IPAddress, config.WebSocketPort)
		if err != nil {
			logger.Println("ERR", err, "(WebSocket is disabled)")
		} else {
			go func() {
				if err := server.ServeWebSocket(wsListener); err != nil {
					logger.Println("ERR", "ServeWebSocket:", err)
				}
			}()
		}
	}

	fmt.Println("Server Listening for Client...")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Println("Got stop signal", s)
	case <-watchConsole(os.Stdin, os.Stdout):
		logger.Println("Got EXIT command")
	}

	fmt.Println("Closing Server")
	logger.Println("Chat server stopped in", server.Terminate(shutdownTimeout))
	fmt.Println("Server Successfully Shut Down")
}
