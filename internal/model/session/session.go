package session

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"max.ks1230/budget-app/internal/entity/expense"
	"max.ks1230/budget-app/internal/logger"
	"max.ks1230/budget-app/internal/model/customerr"
	"max.ks1230/budget-app/internal/model/ledger"
)

type authenticator interface {
	Authenticate(ctx context.Context, username, password string) (user string, created bool, err error)
}

type ledgerManager interface {
	Load(ctx context.Context, username string) *ledger.Ledger
	Add(ctx context.Context, l *ledger.Ledger, category, amount string) (expense.Record, error)
	Delete(ctx context.Context, l *ledger.Ledger, id int64) error
	Clear(ctx context.Context, l *ledger.Ledger) (bool, error)
	Persist(ctx context.Context, l *ledger.Ledger) error
	TotalsByCategory(l *ledger.Ledger, period string) (map[string]float64, error)
}

type notifier interface {
	Notify(title, message string)
}

type config interface {
	Currency() string
}

// Session associates a logged-in username with its loaded ledger. The
// ledger lives here and nowhere else while the session is active.
type Session struct {
	user   string
	ledger *ledger.Ledger
	active bool
}

func (s *Session) User() string {
	return s.user
}

func (s *Session) Ledger() *ledger.Ledger {
	return s.ledger
}

func (s *Session) Active() bool {
	return s.active
}

// Service is the whole surface the presentation layer may call: login
// plus the ledger commands of the active session.
type Service struct {
	auth        authenticator
	ledger      ledgerManager
	notifier    notifier
	currency    string
	handlersMap handlerMap
}

func NewService(auth authenticator, ledgerManager ledgerManager, notifier notifier, config config) *Service {
	res := &Service{
		auth:     auth,
		ledger:   ledgerManager,
		notifier: notifier,
		currency: config.Currency(),
	}
	res.handlersMap = newMap(res)
	return res
}

// Login authenticates (or registers) the user and loads their ledger.
// Login errors are translated to notices here; a declined registration
// produces no notice at all.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	user, created, err := s.auth.Authenticate(ctx, username, password)
	if err != nil {
		s.notifyLoginError(err)
		return nil, err
	}

	l := s.ledger.Load(ctx, user)
	if created {
		// a fresh registration gets its empty ledger file right away
		if err = s.ledger.Persist(ctx, l); err != nil {
			logger.Error("cannot persist empty ledger",
				zap.String("user", user), zap.Error(err))
		}
	}

	logger.Info("user logged in", zap.String("user", user), zap.Bool("created", created))
	return &Session{user: user, ledger: l, active: true}, nil
}

func (s *Service) notifyLoginError(err error) {
	var missing *customerr.MissingCredentialsError
	var invalid *customerr.InvalidPasswordError
	var declined *customerr.RegistrationDeclinedError

	switch {
	case errors.As(err, &missing):
		s.notifier.Notify(loginFailedTitle, missingCredentialsMessage)
	case errors.As(err, &invalid):
		s.notifier.Notify(loginFailedTitle, invalidPasswordMessage)
	case errors.As(err, &declined):
		// the user said no; nothing happened and nothing is shown
	default:
		s.notifier.Notify(errorTitle, somethingWrongMessage)
	}
}

// HandleCommand dispatches one line of user input against the active
// session and returns the text to display.
func (s *Service) HandleCommand(ctx context.Context, sess *Session, text string) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "handleCommand")
	defer span.Finish()

	start := time.Now()
	resp, err := s.handle(ctx, sess, text)
	elapsed := time.Since(start)

	observeCommand(elapsed, err != nil)
	if err != nil {
		ext.Error.Set(span, true)
	}
	return resp, err
}

func (s *Service) handle(ctx context.Context, sess *Session, text string) (string, error) {
	cmd, arg := parseCommand(text)

	handler, ok := s.handlersMap[cmd]
	if ok {
		return handler(ctx, sess, arg)
	}
	return dontUnderstandMessage, nil
}
