// Command caselink is a terminal host for the client: it recovers or
// establishes a session, then lists the cases visible to the signed-in
// user. It doubles as a smoke test against a running backend and IdP.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"caselink/internal/app"
	"caselink/internal/cases"
	"caselink/internal/identity"
	"caselink/internal/platform/config"
	"caselink/internal/platform/httpserver"
	"caselink/internal/platform/logger"
)

func main() {
	metricsAddr := flag.String("metrics", "", "serve Prometheus metrics on this address (empty disables)")
	flag.Parse()

	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reg := prometheus.NewRegistry()
	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := httpserver.New(*metricsAddr, mux)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("metrics server", "error", err)
			}
		}()
		defer srv.Close()
	}

	a := app.New(cfg, app.Options{
		Logger:     log,
		Prompter:   &consolePrompter{in: bufio.NewReader(os.Stdin)},
		Registerer: reg,
	})

	a.Run(ctx)
	<-a.Ready()

	if !a.Session.Authenticated() {
		log.Info("no recoverable session, starting interactive login")
		if err := a.Login.Login(ctx); err != nil {
			log.Error("login failed", "error", err)
			os.Exit(1)
		}
	}
	fmt.Printf("signed in as %s\n", a.Session.UserLabel())

	page, err := a.Cases.List(ctx, cases.ListFilter{})
	if err != nil {
		log.Error("listing cases failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("%d case(s)\n", page.Total)
	for _, c := range page.Items {
		fmt.Printf("  #%d  %-11s %-8s %s\n", c.CaseID, c.Status, c.Priority, c.Title)
	}
}

// consolePrompter satisfies the interactive step with stdin input. A real
// host would open the IdP's authorization page instead.
type consolePrompter struct {
	in *bufio.Reader
}

func (p *consolePrompter) Prompt(_ context.Context) (*identity.AuthorizationResult, error) {
	email, err := p.read("email: ")
	if err != nil {
		return nil, err
	}
	name, err := p.read("display name: ")
	if err != nil {
		return nil, err
	}
	refresh, err := p.read("refresh token: ")
	if err != nil {
		return nil, err
	}
	return &identity.AuthorizationResult{
		Account:      identity.Account{Name: name, Username: email},
		RefreshToken: refresh,
	}, nil
}

func (p *consolePrompter) read(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := p.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
