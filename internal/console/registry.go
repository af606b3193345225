package console

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mmahmood233/buy-01/config"
	"github.com/mmahmood233/buy-01/internal/domain"
	"github.com/mmahmood233/buy-01/internal/gateway"
	"github.com/mmahmood233/buy-01/internal/identity"
)

type session struct {
	console   CatalogConsole
	cred      *identity.StaticCredential
	lastTouch time.Time
}

// Registry hands out one console per signed-in seller and refreshes
// the session credential with the bearer of each request. Sessions are
// evicted after sitting idle longer than the configured TTL.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session
	config   *config.Config
	idleTTL  time.Duration
}

func CreateRegistry(conf *config.Config) *Registry {
	return &Registry{
		sessions: make(map[string]*session),
		config:   conf,
		idleTTL:  time.Duration(conf.SessionConfig.IdleTTLMinutes) * time.Minute,
	}
}

func (r *Registry) Acquire(principal domain.Principal, token string) (CatalogConsole, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[principal.UserID]
	if ok {
		entry.cred.Set(token)
		entry.lastTouch = time.Now()
		return entry.console, nil
	}

	cred := identity.NewStaticCredential(token)
	c, err := CreateCatalogConsole(
		principal,
		gateway.CreateProductGateway(r.config.ProductServiceHost, cred),
		gateway.CreateMediaGateway(r.config.MediaServiceHost, cred),
		ContextConfirmer{},
	)
	if err != nil {
		return nil, err
	}

	r.sessions[principal.UserID] = &session{
		console:   c,
		cred:      cred,
		lastTouch: time.Now(),
	}

	return c, nil
}

// EvictIdle drops sessions that have not been touched within the idle
// TTL. Invoked on a schedule by the app.
func (r *Registry) EvictIdle() {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-r.idleTTL)
	for userID, entry := range r.sessions {
		if entry.lastTouch.Before(cutoff) {
			delete(r.sessions, userID)
			log.Info().Str("component", "EvictIdle").Str("user_id", userID).Msg("evicted idle dashboard session")
		}
	}
}
