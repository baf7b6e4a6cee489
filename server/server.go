package server

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/wfunc/drawguess/config"
	"github.com/wfunc/drawguess/game"
	"github.com/wfunc/drawguess/logger"
	"github.com/wfunc/drawguess/models"
	"github.com/wfunc/drawguess/monitor"
	"github.com/wfunc/drawguess/network"
	"github.com/wfunc/drawguess/room"
	"github.com/wfunc/drawguess/services"
	"github.com/wfunc/drawguess/session"
	"golang.org/x/time/rate"
)

type GameServer struct {
	cfg            config.ServerConfig
	engine         *game.Engine
	loop           *Loop
	sessionManager *session.Manager
	monitor        *monitor.Monitor
	records        *services.RecordService
	upgrader       websocket.Upgrader
	router         *gin.Engine
	httpServer     *http.Server
	stop           chan struct{}
	stopOnce       sync.Once
}

func NewGameServer(cfg config.ServerConfig, engine *game.Engine, loop *Loop, sessionManager *session.Manager, mon *monitor.Monitor, records *services.RecordService) *GameServer {
	s := &GameServer{
		cfg:            cfg,
		engine:         engine,
		loop:           loop,
		sessionManager: sessionManager,
		monitor:        mon,
		records:        records,
		stop:           make(chan struct{}),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}
	s.router = s.routes()
	s.httpServer = &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *GameServer) anyOrigin() bool {
	return len(s.cfg.AllowedOrigins) == 0 || slices.Contains(s.cfg.AllowedOrigins, "*")
}

// checkOrigin admits configured browser origins. Clients that send no Origin header, such as
// the terminal client, are always let through.
func (s *GameServer) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || s.anyOrigin() {
		return true
	}
	return slices.Contains(s.cfg.AllowedOrigins, origin)
}

func (s *GameServer) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
		MaxAge: 12 * time.Hour,
	}
	if s.anyOrigin() {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = s.cfg.AllowedOrigins
	}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(ctx *gin.Context) { ctx.String(http.StatusOK, "healthy") })
	r.GET("/ws", s.handleWebSocket)
	r.GET("/metrics", gin.WrapH(s.monitor.Handler()))
	r.GET("/api/games/recent", s.handleRecentGames)
	r.GET("/api/rooms/:code/games", s.handleRoomGames)
	return r
}

func (s *GameServer) Router() http.Handler {
	return s.router
}

func (s *GameServer) Start() error {
	if s.cfg.IdleTimeout > 0 {
		go s.reapIdle(s.cfg.IdleTimeout)
	}
	logger.Log.Infow("game server listening", "addr", s.cfg.HTTPAddress)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting connections and closes every live session.
func (s *GameServer) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.stop) })
	err := s.httpServer.Shutdown(ctx)
	s.sessionManager.CloseAll()
	return err
}

// reapIdle closes sessions that stopped sending intents. Closing the socket ends its read loop,
// which removes the player from their rooms.
func (s *GameServer) reapIdle(maxIdle time.Duration) {
	ticker := time.NewTicker(max(maxIdle/4, time.Second))
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if ids := s.sessionManager.CloseIdle(maxIdle); len(ids) > 0 {
				logger.Log.Infow("idle sessions closed", "count", len(ids))
			}
		}
	}
}

func (s *GameServer) handleRecentGames(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))
	if s.records == nil {
		ctx.JSON(http.StatusOK, gin.H{"games": []models.GameSummary{}})
		return
	}
	games, err := s.records.Recent(ctx.Request.Context(), limit)
	if err != nil {
		logger.Log.Errorw("recent games", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not load games"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"games": games})
}

func (s *GameServer) handleRoomGames(ctx *gin.Context) {
	code := room.NormalizeCode(ctx.Param("code"))
	if s.records == nil {
		ctx.JSON(http.StatusOK, gin.H{"roomCode": code, "games": []models.GameSummary{}})
		return
	}
	games, err := s.records.ByRoom(ctx.Request.Context(), code)
	if err != nil {
		logger.Log.Errorw("room games", "room", code, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not load games"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"roomCode": code, "games": games})
}

func (s *GameServer) handleWebSocket(ctx *gin.Context) {
	conn, err := s.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		logger.Log.Infow("failed to upgrade connection", "error", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	wsConn.SetHeartbeat(s.cfg.PingInterval)

	var limiter *rate.Limiter
	if s.cfg.IntentRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(s.cfg.IntentRate), max(s.cfg.IntentBurst, 1))
	}
	sess := session.NewSession(uuid.New().String(), wsConn, limiter, s.cfg.SendQueue)
	s.sessionManager.Add(sess)
	s.monitor.IncOnlinePlayers()
	go sess.WritePump(s.cfg.PingInterval)

	logger.Log.Infow("new connection", "remote", wsConn.RemoteAddr().String(), "session", sess.GetID())

	defer func() {
		logger.Log.Infow("connection closed", "remote", wsConn.RemoteAddr().String(), "session", sess.GetID())
		s.sessionManager.Remove(sess.GetID())
		s.monitor.DecOnlinePlayers()
		sess.Close()
		playerID := sess.GetID()
		s.loop.Post(func() { s.engine.Disconnect(playerID) })
	}()

	for {
		env, err := wsConn.ReadEnvelope()
		if errors.Is(err, network.ErrMalformedFrame) {
			logger.Log.Debugw("malformed frame", "session", sess.GetID(), "error", err)
			continue
		}
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Log.Debugw("read failed", "session", sess.GetID(), "error", err)
			}
			return
		}
		if !sess.Allow() {
			logger.Log.Warnw("intent rate limited", "session", sess.GetID(), "event", env.Event)
			continue
		}
		if err := s.dispatch(sess.GetID(), env); err != nil {
			logger.Log.Debugw("intent rejected", "session", sess.GetID(), "event", env.Event, "error", err)
		}
	}
}
