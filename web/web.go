// Package web provides the web server for the Tatar SMS panel, including
// HTTP serving, routing, templates, and background job scheduling.
package web

import (
	"context"
	"embed"
	"html/template"
	"io"
	"net"
	"net/http"
	"strconv"

	"github.com/kokorindanilll2288-sys/rdss.github.io/config"
	"github.com/kokorindanilll2288-sys/rdss.github.io/logger"
	"github.com/kokorindanilll2288-sys/rdss.github.io/util/common"
	"github.com/kokorindanilll2288-sys/rdss.github.io/web/controller"
	"github.com/kokorindanilll2288-sys/rdss.github.io/web/job"
	"github.com/kokorindanilll2288-sys/rdss.github.io/web/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

//go:embed html/*
var htmlFS embed.FS

// Server represents the web server for the Tatar SMS panel with
// controllers, services, and scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index *controller.IndexController
	chat  *controller.ChatController

	settingService service.SettingService

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// getHtmlTemplate parses embedded HTML templates from the bundled htmlFS.
func (s *Server) getHtmlTemplate(funcMap template.FuncMap) (*template.Template, error) {
	t := template.New("").Funcs(funcMap)
	return t.ParseFS(htmlFS, "html/*.html")
}

// initRouter initializes Gin, registers middleware, templates,
// controllers and returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	basePath, err := s.settingService.GetBasePath()
	if err != nil {
		return nil, err
	}

	secret, err := s.settingService.GetSecret()
	if err != nil {
		return nil, err
	}

	sessionMaxAge, err := s.settingService.GetSessionMaxAge()
	if err != nil {
		return nil, err
	}

	store := cookie.NewStore(secret)
	store.Options(sessions.Options{
		Path:     basePath,
		MaxAge:   sessionMaxAge * 60,
		HttpOnly: true,
	})
	engine.Use(sessions.Sessions("tatar-sms", store))

	// gzip, excluding the API path to avoid double-compressing JSON
	engine.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{basePath + "panel/api/"}),
	))

	engine.Use(func(c *gin.Context) {
		c.Set("base_path", basePath)
	})

	tpl, err := s.getHtmlTemplate(template.FuncMap{})
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tpl)

	g := engine.Group(basePath)
	s.index = controller.NewIndexController(g)
	s.chat = controller.NewChatController(g)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// startTask schedules the background jobs.
func (s *Server) startTask() {
	s.cron.AddJob("@every 5m", job.NewCheckQueueJob())
	s.cron.AddJob("@every 1m", job.NewCheckMemJob())
	s.cron.AddJob("@daily", job.NewCheckpointDBJob())
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	loc, err := s.settingService.GetTimeLocation()
	if err != nil {
		return err
	}
	s.cron = cron.New(cron.WithLocation(loc), cron.WithSeconds())
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listen, err := s.settingService.GetListen()
	if err != nil {
		return err
	}
	port, err := s.settingService.GetPort()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(listen, strconv.Itoa(port))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()

	return nil
}

// Stop gracefully shuts down the web server and the cron jobs.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}
