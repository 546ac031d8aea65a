package web

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"seraph.si/v2/bfhl-form/src/form"
)

const sessionCookie = "bfhl_session"

const (
	noticeBusy    = "A submission is already in progress. Please wait for it to finish."
	noticePending = "Submitting…"
)

// Server is the browser front end. Each visitor gets an in-memory form.State
// keyed by a session cookie.
type Server struct {
	app      *fiber.App
	client   *form.Client
	sessions *sessionStore
	logger   *zap.Logger
}

func New(client *form.Client, logger *zap.Logger, sessionLimit int) *Server {
	s := &Server{
		client:   client,
		sessions: newSessionStore(sessionLimit),
		logger:   logger,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "BFHL Form",
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		DisableStartupMessage: true,
	})
	s.app.Use(recover.New())
	s.app.Use(s.logRequests)

	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.app.Get("/", s.index)
	s.app.Post("/submit", s.submit)
	s.app.Post("/fields", s.fields)

	return s
}

func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	s.logger.Info("Listening", zap.String("addr", addr), zap.String("endpoint", s.client.Endpoint()))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.logger.Info("request completed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("duration", time.Since(start)),
	)
	return err
}

// session returns the caller's session, starting a new one when the cookie
// is missing or refers to an evicted session.
func (s *Server) session(c *fiber.Ctx) *session {
	if id := c.Cookies(sessionCookie); id != "" {
		if sess, ok := s.sessions.get(id); ok {
			return sess
		}
	}

	id, sess := s.sessions.create()
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return sess
}

func (s *Server) index(c *fiber.Ctx) error {
	sess := s.session(c)
	sess.mu.Lock()
	state := sess.state
	sess.mu.Unlock()

	return s.render(c, fiber.StatusOK, state, "")
}

func (s *Server) submit(c *fiber.Ctx) error {
	sess := s.session(c)

	sess.mu.Lock()
	if sess.state.Pending {
		state := sess.state
		sess.mu.Unlock()
		return s.render(c, fiber.StatusConflict, state, noticeBusy)
	}
	// fiber reuses request buffers; the input outlives this handler.
	sess.state.Input = utils.CopyString(c.FormValue("input"))
	req, err := sess.state.Begin()
	state := sess.state
	sess.mu.Unlock()

	if err != nil {
		return s.render(c, fiber.StatusOK, state, "")
	}

	res, err := s.client.Send(c.UserContext(), req)

	sess.mu.Lock()
	sess.state.Apply(res, err)
	state = sess.state
	sess.mu.Unlock()

	return s.render(c, fiber.StatusOK, state, "")
}

func (s *Server) fields(c *fiber.Ctx) error {
	var tokens []string
	for _, v := range c.Request().PostArgs().PeekMulti("fields") {
		tokens = append(tokens, string(v))
	}
	sel, err := form.ParseFields(tokens)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	sess := s.session(c)
	sess.mu.Lock()
	sess.state.Selected = sel
	state := sess.state
	sess.mu.Unlock()

	return s.render(c, fiber.StatusOK, state, "")
}

func (s *Server) render(c *fiber.Ctx, status int, state form.State, notice string) error {
	if notice == "" && state.Pending {
		notice = noticePending
	}
	page, err := renderPage(state, notice)
	if err != nil {
		s.logger.Error("failed to render page", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
	}
	c.Type("html")
	return c.Status(status).SendString(page)
}
