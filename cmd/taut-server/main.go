// taut-server serves the proof engine over HTTP/3: proof verification,
// tautology proving and the model-or-refutation decision procedure. With
// no certificate configured a self-signed one is generated for local use.
//
// Flags:
//
//	-addr    UDP address to bind (default 127.0.0.1:8443).
//	-cert    TLS certificate file (with -key).
//	-key     TLS private key file.
//	-config  JSON config file overriding the defaults.
//	-v       verbose logging.
//	-debug   debug logging.
//	-version print version information.
package main

import (
	"crypto/tls"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/taut-lang/taut/internal/cli"
	"github.com/taut-lang/taut/internal/service"
)

// Config is the server's JSON configuration.
type Config struct {
	Addr     string `json:"addr"`
	CertFile string `json:"cert_file"`
	KeyFile  string `json:"key_file"`
}

func main() {
	var (
		addr        string
		certFile    string
		keyFile     string
		configPath  string
		verbose     bool
		debug       bool
		showVersion bool
	)
	flag.StringVar(&addr, "addr", "127.0.0.1:8443", "UDP address to bind")
	flag.StringVar(&certFile, "cert", "", "TLS certificate file")
	flag.StringVar(&keyFile, "key", "", "TLS private key file")
	flag.StringVar(&configPath, "config", "", "JSON config file")
	flag.BoolVar(&verbose, "v", false, "verbose logging")
	flag.BoolVar(&debug, "debug", false, "debug logging")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		cli.PrintVersion("taut-server", false)
		return
	}
	log := cli.NewLogger(verbose || debug, debug)

	cfg := Config{Addr: addr, CertFile: certFile, KeyFile: keyFile}
	if err := cli.LoadConfig(configPath, &cfg); err != nil {
		cli.ExitWithError("%v", err)
	}

	var tlsCfg *tls.Config
	var err error
	if cfg.CertFile != "" && cfg.KeyFile != "" {
		tlsCfg, err = service.LoadTLSConfig(cfg.CertFile, cfg.KeyFile)
	} else {
		log.Warn("no certificate configured; generating a self-signed one")
		tlsCfg, err = service.GenerateSelfSignedTLS([]string{"localhost", "127.0.0.1"}, 30*24*time.Hour)
	}
	if err != nil {
		cli.ExitWithError("%v", err)
	}

	srv := service.NewServer(cfg.Addr, tlsCfg, service.NewHandler(log))
	bound, err := srv.Start()
	if err != nil {
		cli.ExitWithError("starting server: %v", err)
	}
	log.Info("serving HTTP/3 on %s", bound)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
	log.Info("shutting down")
	_ = srv.Stop()
}
