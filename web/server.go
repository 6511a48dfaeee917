// Package web is the HTTP API of exavatar.
//
// Two servers are started: the public one serves the avatars, and the admin
// one, which should not be exposed, serves the prometheus metrics.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cozy/exavatar/model/stack"
	"github.com/cozy/exavatar/pkg/avatar"
	"github.com/cozy/exavatar/pkg/config/config"
	"github.com/cozy/exavatar/pkg/utils"
	"github.com/labstack/echo/v4"
)

// Servers contains the public and admin servers.
type Servers struct {
	major     *echo.Echo
	admin     *echo.Echo
	processes utils.Shutdowner
	errs      chan error
}

// NewServers returns the servers for the given service, ready to be started.
func NewServers(svc *avatar.Service) (*Servers, error) {
	major := newEcho()
	if err := SetupRoutes(major, svc); err != nil {
		return nil, err
	}

	admin := newEcho()
	if err := SetupAdminRoutes(admin); err != nil {
		return nil, err
	}

	return &Servers{
		major: major,
		admin: admin,
		errs:  make(chan error, 2),
	}, nil
}

// ListenAndServe creates and setups all the necessary http endpoints from
// the configuration. They are not started, see [Servers.Start].
func ListenAndServe(ctx context.Context, opts ...stack.Options) (*Servers, error) {
	svc, processes, err := stack.Start(ctx, opts...)
	if err != nil {
		return nil, err
	}
	servers, err := NewServers(svc)
	if err != nil {
		return nil, err
	}
	servers.processes = processes
	return servers, nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	return e
}

// Handler returns the handler of the public server.
func (s *Servers) Handler() http.Handler {
	return s.major
}

// AdminHandler returns the handler of the admin server.
func (s *Servers) AdminHandler() http.Handler {
	return s.admin
}

// Start starts the servers in background goroutines. The errors are sent in
// the channel returned by [Servers.Wait].
func (s *Servers) Start() {
	go s.start(s.admin, "admin", config.AdminServerAddr())
	go s.start(s.major, "major", config.ServerAddr())
}

func (s *Servers) start(e *echo.Echo, name, addr string) {
	fmt.Printf("  http server %s started on %q\n", name, addr)
	err := e.Start(addr)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.errs <- fmt.Errorf("%s server: %w", name, err)
	}
}

// Wait returns a channel receiving the errors of the servers.
func (s *Servers) Wait() <-chan error {
	return s.errs
}

// Shutdown gracefully stops the servers, and then the processes of the
// stack.
func (s *Servers) Shutdown(ctx context.Context) error {
	g := utils.NewGroupShutdown(
		utils.ShutdownFunc(func(ctx context.Context) error {
			fmt.Print("  shutting down http server major...")
			return printResult(s.major.Shutdown(ctx))
		}),
		utils.ShutdownFunc(func(ctx context.Context) error {
			fmt.Print("  shutting down http server admin...")
			return printResult(s.admin.Shutdown(ctx))
		}),
	)
	err := g.Shutdown(ctx)
	if s.processes != nil {
		if errp := s.processes.Shutdown(ctx); errp != nil && err == nil {
			err = errp
		}
	}
	return err
}

func printResult(err error) error {
	if err != nil {
		fmt.Println("failed: ", err)
		return err
	}
	fmt.Println("ok.")
	return nil
}
