package stack

import (
	"context"
	"fmt"
	"time"

	"github.com/cozy/exavatar/pkg/avatar"
	"github.com/cozy/exavatar/pkg/cache"
	build "github.com/cozy/exavatar/pkg/config"
	"github.com/cozy/exavatar/pkg/config/config"
	"github.com/cozy/exavatar/pkg/logger"
	"github.com/cozy/exavatar/pkg/store"
	"github.com/cozy/exavatar/pkg/utils"
	"github.com/redis/go-redis/v9"
)

// Options can be used to give options when starting the stack.
type Options int

const (
	// NoStoreCheck option can be used to skip the check of the asset store
	NoStoreCheck Options = iota + 1
	// Quiet option can be used to not print the development banner
	Quiet
)

func hasOptions(needle Options, haystack []Options) bool {
	for _, opt := range haystack {
		if opt == needle {
			return true
		}
	}
	return false
}

type redisCloser struct {
	client redis.UniversalClient
}

func (r redisCloser) Shutdown(ctx context.Context) error {
	fmt.Print("  shutting down redis...")
	if err := r.client.Close(); err != nil {
		fmt.Println("failed: ", err)
		return err
	}
	fmt.Println("ok.")
	return nil
}

// Start is used to initialize the asset store, the cache and the avatar
// service from the configuration.
func Start(ctx context.Context, opts ...Options) (svc *avatar.Service, processes utils.Shutdowner, err error) {
	if build.IsDevRelease() && !hasOptions(Quiet, opts) {
		fmt.Print(`                           !! DEVELOPMENT RELEASE !!
You are running a development release. Please do not use this binary as your
production server.

`)
	}

	cfg := config.GetConfig()
	log := logger.WithNamespace("stack")
	var shutdowners []utils.Shutdowner

	st, err := store.New(ctx, cfg.StoreOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("could not open the asset store: %w", err)
	}

	// Check that we can reach the asset store. An unreachable store is not
	// fatal: the requests for images will fail, but the text avatars can
	// still be served.
	if !hasOptions(NoStoreCheck, opts) {
		attempts := 3
		attemptsSpacing := 1 * time.Second
		for i := 0; i < attempts; i++ {
			_, err = st.CheckStatus(ctx)
			if err == nil {
				break
			}
			if i < attempts-1 {
				log.Warnf("Could not reach the %s asset store: %s, retrying in %v", st.Kind(), err, attemptsSpacing)
				time.Sleep(attemptsSpacing)
			}
		}
		if err != nil {
			log.Errorf("The %s asset store is unreachable: %s", st.Kind(), err)
			err = nil
		}
	}

	if client := cfg.Cache.Redis; client != nil {
		shutdowners = append(shutdowners, redisCloser{client})
	}
	c := cache.New(cfg.Cache.Redis, cfg.CacheOptions())

	svc = avatar.NewService(st, c, cfg.AvatarOptions(), cfg.Assets.Timeout)
	log.Infof("Avatars are loaded from the %s store and cached in %s", st.Kind(), c.Kind())

	// Global shutdowner that composes all the running processes of the stack
	processes = utils.NewGroupShutdown(shutdowners...)
	return svc, processes, nil
}
