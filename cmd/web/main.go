package main

import (
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/tomz197/campus-invaders/internal/config"
)

//go:embed index.html
var htmlPage string

func main() {
	flags := config.Flags("campus-web")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "campus-web: %v\n", err)
		os.Exit(2)
	}
	path, _ := flags.GetString("config")
	settings, err := config.Load(path, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "campus-web: %v\n", err)
		os.Exit(1)
	}
	logger, err := config.NewLogger(settings.Log.Level, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "campus-web: %v\n", err)
		os.Exit(1)
	}

	page := renderPage(settings.Web.DisplayHost, settings.SSH.Port)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})

	addr := net.JoinHostPort(settings.Web.Host, settings.Web.Port)
	logger.Info("starting web server", "addr", "http://"+addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// renderPage fills in how to connect. The port is left out when it is the
// SSH default.
func renderPage(host, port string) string {
	command := "ssh " + host
	if port != "" && port != "22" {
		command = fmt.Sprintf("ssh -p %s %s", port, host)
	}
	return strings.NewReplacer("{{.SSHCommand}}", command, "{{.SSHHost}}", host).Replace(htmlPage)
}
