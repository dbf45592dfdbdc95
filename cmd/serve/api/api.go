// Package api exposes the catalog and the play queue over HTTP.
package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gigurra/karaoke/cmd/serve/catalog"
	"github.com/gigurra/karaoke/cmd/serve/queue"
	"github.com/gin-gonic/gin"
)

const (
	msgAdded        = "Song added to queue"
	msgDuplicate    = "Song is already in the queue"
	msgInvalidSong  = "Invalid song data"
	msgInvalidIndex = "Invalid index"
	msgEmptyQueue   = "Queue is empty"
	msgCleared      = "Queue cleared"
)

type Options struct {
	// StaticDir is an absolute directory served for every non-API GET. Empty disables it.
	StaticDir string
	NoCache   bool
	SpaMode   bool
	// CORSOrigins lists allowed origins. Empty or "*" allows all.
	CORSOrigins []string
}

// API is the karaoke HTTP handler.
type API struct {
	catalog *catalog.Catalog
	queue   *queue.Manager
	hub     *Hub
	engine  *gin.Engine
}

func New(cat *catalog.Catalog, q *queue.Manager, opts Options) (*API, error) {
	corsMiddleware, err := newCORS(opts.CORSOrigins)
	if err != nil {
		return nil, fmt.Errorf("invalid CORS configuration: %w", err)
	}

	a := &API{
		catalog: cat,
		queue:   q,
		hub:     NewHub(q, originChecker(opts.CORSOrigins)),
		engine:  gin.New(),
	}

	r := a.engine
	r.Use(gin.Recovery(), requestLogger(), corsMiddleware)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes := r.Group("/api")
	routes.GET("/songs", a.listSongs)
	routes.GET("/queue", a.listQueue)
	routes.DELETE("/queue", a.clearQueue)
	routes.POST("/queue/add", a.addToQueue)
	routes.POST("/queue/remove", a.removeFromQueue)
	routes.POST("/queue/play", a.playNext)
	routes.GET("/queue/events", a.hub.ServeWS)

	if opts.StaticDir != "" {
		r.NoRoute(staticHandler(opts.StaticDir, opts.NoCache, opts.SpaMode))
	} else {
		r.NoRoute(func(c *gin.Context) {
			respondError(c, http.StatusNotFound, "Not found")
		})
	}

	return a, nil
}

func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.engine.ServeHTTP(w, r)
}

// Close disconnects all queue event subscribers.
func (a *API) Close() {
	a.hub.Close()
}

func (a *API) listSongs(c *gin.Context) {
	c.JSON(http.StatusOK, a.catalog.ListSongs())
}

func (a *API) listQueue(c *gin.Context) {
	c.JSON(http.StatusOK, a.queue.List())
}

func (a *API) addToQueue(c *gin.Context) {
	var entry queue.Entry
	if err := c.ShouldBindJSON(&entry); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidSong)
		return
	}

	if err := a.queue.Add(entry); err != nil {
		switch {
		case errors.Is(err, queue.ErrDuplicateEntry):
			respondError(c, http.StatusBadRequest, msgDuplicate)
		default:
			respondError(c, http.StatusBadRequest, msgInvalidSong)
		}
		return
	}

	slog.Info("song queued", "song_name", entry.SongName, "artist", entry.Artist)
	a.hub.Notify()
	respondSuccess(c, msgAdded)
}

type removeRequest struct {
	Index *int `json:"index"`
}

func (a *API) removeFromQueue(c *gin.Context) {
	var req removeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Index == nil {
		respondError(c, http.StatusBadRequest, msgInvalidIndex)
		return
	}

	removed, err := a.queue.RemoveAt(*req.Index)
	if err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidIndex)
		return
	}

	slog.Info("song removed from queue", "index", *req.Index, "song_name", removed.SongName)
	a.hub.Notify()
	respondSuccess(c, fmt.Sprintf("Removed '%s'", removed.SongName))
}

func (a *API) playNext(c *gin.Context) {
	next, err := a.queue.PlayNext()
	if err != nil {
		respondError(c, http.StatusNotFound, msgEmptyQueue)
		return
	}

	slog.Info("playing next song", "song_name", next.SongName, "artist", next.Artist)
	a.hub.Notify()
	c.JSON(http.StatusOK, next)
}

func (a *API) clearQueue(c *gin.Context) {
	a.queue.Clear()
	a.hub.Notify()
	respondSuccess(c, msgCleared)
}

func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": message})
}

func respondError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"status": "error", "message": message})
}
