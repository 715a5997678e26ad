package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wtask/linechat/internal/config"
	"github.com/wtask/linechat/pkg/semver"
)

type (
	// Configuration - server configuration
	Configuration struct {
		// IPAddress - bind the address
		IPAddress string
		// Port - bind the port
		Port uint16
		// WebSocketPort - bind the port for WebSocket clients, 0 disables WebSocket
		WebSocketPort uint16
		// WriteTimeout - period to deliver a line to a single client
		WriteTimeout time.Duration
	}
)

const (
	// DefaultPort - chat port when no valid one is given
	DefaultPort = 14001
	// WriteTimeoutMultiplier - timeout payload without time units
	WriteTimeoutMultiplier = 30
)

var (
	// BinaryName - name of run application binary
	BinaryName = strings.TrimSuffix(filepath.Base(os.Args[0]), filepath.Ext(os.Args[0]))

	// version - overwritten at link time with -ldflags "-X main.version=..."
	version = "0.1.0"

	// Version - app version fingerprint
	Version = semver.MustParse(version).String()
)

// configure - parses command line arguments.
// Malformed port values are replaced by defaults with a notice written to out.
// Returns false if application should exit without starting.
func configure(args []string, out io.Writer) (Configuration, bool) {
	fs := flag.NewFlagSet(BinaryName, flag.ContinueOnError)
	fs.SetOutput(out)
	printUsage := func() {
		fmt.Fprintf(out, "Launch text chat server over TCP\n\n\t%s [options]\nOptions:\n\n", BinaryName)
		fs.PrintDefaults()
		fmt.Fprint(out, "\n")
	}
	fs.Usage = printUsage

	help := false
	ip := ""
	port := config.NewPort(DefaultPort)
	wsPort := config.NewPort(0)
	writeTimeout := WriteTimeoutMultiplier
	fs.BoolVar(&help, "help", false, "Print usage help")
	fs.StringVar(&ip, "ip", "", "Listen address")
	fs.Var(port, "port", "Listen port")
	fs.Var(wsPort, "ws-port", "Listen port for WebSocket clients, 0 disables WebSocket")
	fs.IntVar(&writeTimeout, "write-timeout", writeTimeout, "Seconds to deliver a line to a single client.")

	if err := fs.Parse(args); err != nil {
		return Configuration{}, false
	}
	if help {
		printUsage()
		return Configuration{}, false
	}

	if port.Rejected {
		fmt.Fprintf(out, "Insufficient port %q. Server will be created with default port.\n", port.Input)
	}
	if wsPort.Rejected {
		fmt.Fprintf(out, "Insufficient WebSocket port %q. WebSocket is disabled.\n", wsPort.Input)
	}
	if writeTimeout < 1 {
		fmt.Fprintf(out, "Insufficient write-timeout %d. Default %d is used.\n", writeTimeout, WriteTimeoutMultiplier)
		writeTimeout = WriteTimeoutMultiplier
	}

	return Configuration{
		IPAddress:     ip,
		Port:          port.Value,
		WebSocketPort: wsPort.Value,
		WriteTimeout:  time.Duration(writeTimeout) * time.Second,
	}, true
}
