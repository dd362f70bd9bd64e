package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"pkgcheck/internal/server"
	"pkgcheck/internal/store"
)

type App struct {
	server *server.Server
	store  *store.Store
}

func NewApp() (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	st := store.NewFromEnv(cfg.StorePath)
	api := NewAPIClient(cfg.APIURL, cfg.APIToken, nil)

	ws := NewWSHandler()
	orch := NewOrchestrator(st, api, ws.Broadcast)
	ws.Bind(orch)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", ws.HandleWS)
	mux.HandleFunc("/package/", newDisplayHandler(st))

	srv := server.New(cfg.Port, mux)
	return &App{server: srv, store: st}, nil
}

// newDisplayHandler serves the popup's card shape for a cached package, so
// a freshly opened popup can render without waiting on the socket.
func newDisplayHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		name := r.URL.Path[len("/package/"):]
		rec, ok := st.Lookup(name)
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Present(rec))
	}
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	_ = a.store.Close()
	return a.server.Shutdown(ctx)
}
