package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wtask/linechat/internal/config"
	"github.com/wtask/linechat/pkg/semver"
)

type (
	// Configuration - client configuration
	Configuration struct {
		// Address - server host
		Address string
		// Port - server port
		Port uint16
	}
)

const (
	// DefaultAddress - server host when no valid one is given
	DefaultAddress = "localhost"
	// DefaultPort - server port when no valid one is given
	DefaultPort = 14001
)

var (
	// BinaryName - name of run application binary
	BinaryName = strings.TrimSuffix(filepath.Base(os.Args[0]), filepath.Ext(os.Args[0]))

	// version - overwritten at link time with -ldflags "-X main.version=..."
	version = "0.1.0"

	// Version - app version fingerprint
	Version = semver.MustParse(version).String()
)

// configure - parses command line arguments, malformed values fall back to defaults.
// Returns false if application should exit without connecting.
func configure(args []string, out io.Writer) (Configuration, bool) {
	fs := flag.NewFlagSet(BinaryName, flag.ContinueOnError)
	fs.SetOutput(out)
	printUsage := func() {
		fmt.Fprintf(out, "Text chat client (v%s)\n\n\t%s [options]\nOptions:\n\n", Version, BinaryName)
		fs.PrintDefaults()
		fmt.Fprint(out, "\n")
	}
	fs.Usage = printUsage

	help := false
	address := config.NewText(DefaultAddress)
	port := config.NewPort(DefaultPort)
	fs.BoolVar(&help, "help", false, "Print usage help")
	fs.Var(address, "address", "Server address")
	fs.Var(port, "port", "Server port")

	if err := fs.Parse(args); err != nil {
		return Configuration{}, false
	}
	if help {
		printUsage()
		return Configuration{}, false
	}
	if port.Rejected {
		fmt.Fprintf(out, "Insufficient port %q. Default port %d is used.\n", port.Input, DefaultPort)
	}

	return Configuration{Address: address.Value, Port: port.Value}, true
}
