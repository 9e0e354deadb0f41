package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/qtje/comic/internal/cache"
	"github.com/qtje/comic/internal/config"
	"github.com/qtje/comic/internal/jobs"
	"github.com/qtje/comic/internal/queue"
	"github.com/qtje/comic/internal/service"
	"github.com/qtje/comic/internal/store"
)

// Server represents the server
type Server struct {
	httpPort string
}

// NewServer creates a new server
func NewServer(httpPort string) *Server {
	return &Server{
		httpPort: httpPort,
	}
}

// Start starts the server
func (s *Server) Start() {
	if err := Start(s.httpPort); err != nil {
		logrus.Fatalf("error starting server: %v", err)
	}
}

// Start starts the http server
func Start(httpPort string) error {
	httpPort = ":" + httpPort

	cnf := config.LoadConfig()
	rdb := config.GetDb(cnf)

	rl, err := net.Listen("tcp", httpPort)
	if err != nil {
		return err
	}

	redis := cache.NewRedis(cnf.RedisAddr)

	comicStore := store.NewGormStore(rdb)
	if err := comicStore.Migrate(); err != nil {
		return err
	}

	pageQueue := queue.NewRedisPageQueue(redis)

	aliases := service.NewAliasService(comicStore, cache.NewConflictCache(redis))
	resolver := service.NewResolver(comicStore, aliases, cache.NewSnapshotCache(redis))
	links := service.NewLinkService(comicStore)
	pages := service.NewPageService(comicStore, links, pageQueue)
	editor := service.NewEditorService(comicStore, aliases)
	forum := service.NewForumService(comicStore)

	feed := service.NewFeedService(20)
	feedCtx, stopFeed := context.WithCancel(context.Background())
	defer stopFeed()
	if err := feed.Follow(feedCtx, pageQueue); err != nil {
		logrus.Errorf("error following page saves: %v", err)
	}

	router := newRouter(&handler{
		resolver: resolver,
		pages:    pages,
		links:    links,
		aliases:  aliases,
		editor:   editor,
		forum:    forum,
		feed:     feed,
	})

	runner := jobs.NewRunner(jobs.NewConflictScanTask(cnf.ConflictScanCron, aliases))
	runner.Start()
	defer runner.Stop()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // All origins are allowed
		AllowedMethods:   []string{"GET", "POST", "DELETE", "PUT"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", accountHeader},
		AllowCredentials: true,
	})

	restServer := &http.Server{
		Addr:    httpPort,
		Handler: c.Handler(router),
	}

	// make sure to wait for the server to stop before exiting
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		logrus.Info("starting comic server on: ", httpPort)
		if err := restServer.Serve(rl); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logrus.Errorf("error starting comic server: %v", err)
			}
		}
		logrus.Infof("comic server stopped")
	}()

	time.Sleep(1 * time.Second)
	logrus.Infof("Press Ctrl+C to stop the server")

	// listen for interrupt signal to gracefully shut down the server
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGTERM, unix.SIGINT, unix.SIGTSTP)
	<-sigs
	// clean Ctrl+C output
	fmt.Println()

	if err := restServer.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error stopping comic server: %v", err)
	}

	wg.Wait()

	return nil
}
