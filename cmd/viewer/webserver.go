package main

import (
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"

	mandel "github.com/marben/mandel_viewer"
	"github.com/marben/mandel_viewer/config"
	"github.com/marben/mandel_viewer/view"
)

// webServer creates server serving files in the static folder
// and the websocket endpoint driving the viewers
func webServer(cfg config.Config, initial mandel.Viewport) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", websocketHandler(cfg, initial))
	mux.Handle("/", http.FileServer(http.Dir(cfg.Static)))

	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// websocketHandler handles the http ws endpoint
// each connection runs its own viewer until the browser goes away
func websocketHandler(cfg config.Config, initial mandel.Viewport) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // TODO: tighten in prod
		})
		if err != nil {
			log.Println(err)
			return
		}
		defer c.CloseNow()

		log.Printf("got connection from: %s", r.RemoteAddr)
		opts := []view.Option{view.WithZoomFactors(cfg.ZoomIn, cfg.ZoomOut)}
		if r, ok := mandel.Landmarks[cfg.Region]; ok {
			// fit to the browser window, not to the configured render size
			opts = append(opts, view.WithRegion(r))
		}
		v := view.New(cfg.Fractal(), initial, opts...)
		if err := view.Serve(r.Context(), c, v); err != nil {
			log.Printf("session %s: %v", r.RemoteAddr, err)
			return
		}
		log.Printf("closed connection from: %s", r.RemoteAddr)
	}
}
