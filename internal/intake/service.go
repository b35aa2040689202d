// Package intake turns inbound chat messages and explicit order submissions
// into ledger rows and replies.
package intake

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sheikh-saqib/tea-order-assistant/internal/apperr"
	"github.com/sheikh-saqib/tea-order-assistant/internal/intent"
	interfaces "github.com/sheikh-saqib/tea-order-assistant/internal/interfaces"
	"github.com/sheikh-saqib/tea-order-assistant/internal/models"
	"github.com/sheikh-saqib/tea-order-assistant/internal/models/events"
	"github.com/sheikh-saqib/tea-order-assistant/internal/pkg/logger"
)

const (
	SourceChat     = "chat"
	SourceWhatsApp = "whatsapp"
	SourceAPI      = "api"

	// DefaultBuyer is recorded when a chat order arrives without a sender.
	DefaultBuyer = "chat-user"

	OrderNotRecordedReply = "⚠️ Sorry, we couldn't record your order right now. Please try again in a moment."

	// DefaultPublishTimeout bounds one background event publish.
	DefaultPublishTimeout = 10 * time.Second
)

// Appender is the write side of the ledger.
type Appender interface {
	Append(ctx context.Context, rec models.OrderRecord) error
}

type Message struct {
	Text   string
	Sender string
	Source string
}

type Reply struct {
	Text     string
	Intent   intent.Intent
	Recorded bool // an order row was committed
}

// OrderRequest is an explicit order submission. Quantity stays raw so that
// non-numeric input surfaces as a validation error rather than a decode error.
type OrderRequest struct {
	Buyer    string
	Product  string
	Quantity string
	Source   string
}

type Service struct {
	classifier *intent.Classifier
	replier    *intent.Replier
	ledger     Appender
	publisher  interfaces.EventPublisher
	responder  interfaces.Responder
	log        *logger.Logger
	now        func() time.Time
	newID      func() string

	publishTimeout time.Duration
	pending        sync.WaitGroup // in-flight event publishes
}

type Option func(*Service)

func WithPublisher(p interfaces.EventPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithResponder sets the open-domain responder consulted for unknown messages.
func WithResponder(r interfaces.Responder) Option {
	return func(s *Service) { s.responder = r }
}

func WithReplier(r *intent.Replier) Option {
	return func(s *Service) { s.replier = r }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithPublishTimeout(d time.Duration) Option {
	return func(s *Service) { s.publishTimeout = d }
}

func WithLogger(log *logger.Logger) Option {
	return func(s *Service) { s.log = log }
}

func NewService(classifier *intent.Classifier, ledger Appender, opts ...Option) *Service {
	s := &Service{
		classifier: classifier,
		replier:    intent.NewReplier(),
		ledger:     ledger,
		log:        logger.NewNop(),
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },

		publishTimeout: DefaultPublishTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HandleMessage classifies msg and, for orders, records them before replying.
// It always produces a reply; unexpected failures become the fallback reply.
func (s *Service) HandleMessage(ctx context.Context, msg Message) (reply Reply) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("message handling panicked", "panic", r, "source", msg.Source)
			reply = Reply{Text: s.replier.Fallback(), Intent: intent.Unknown()}
		}
	}()

	in := s.classifier.Classify(msg.Text)
	s.log.Debug("message classified", "intent", in.String(), "source", msg.Source)

	switch in.Kind {
	case intent.KindOrder:
		rec := models.OrderRecord{
			Time:     s.now(),
			Buyer:    buyerOrDefault(msg.Sender),
			Product:  in.Product,
			Quantity: in.Quantity,
		}
		if err := s.record(ctx, rec, sourceOr(msg.Source, SourceChat)); err != nil {
			s.log.Error("failed to record chat order", "error", err, "buyer", rec.Buyer)
			return Reply{Text: OrderNotRecordedReply, Intent: in}
		}
		return Reply{Text: s.replier.Reply(in), Intent: in, Recorded: true}

	case intent.KindUnknown:
		if s.responder != nil {
			text, err := s.responder.Respond(ctx, msg.Text)
			if err == nil && strings.TrimSpace(text) != "" {
				return Reply{Text: text, Intent: in}
			}
			if err != nil {
				s.log.Warn("responder failed, using canned reply", "error", err)
			}
		}
	}
	return Reply{Text: s.replier.Reply(in), Intent: in}
}

// SubmitOrder validates and records an explicit order. Errors are
// *apperr.Error of kind Validation or Storage.
func (s *Service) SubmitOrder(ctx context.Context, req OrderRequest) (models.OrderRecord, error) {
	rec, err := s.validate(req)
	if err != nil {
		return models.OrderRecord{}, err
	}
	if err := s.record(ctx, rec, sourceOr(req.Source, SourceAPI)); err != nil {
		s.log.Error("failed to record order", "error", err, "buyer", rec.Buyer)
		return models.OrderRecord{}, err
	}
	return rec, nil
}

func (s *Service) validate(req OrderRequest) (models.OrderRecord, error) {
	const op = "order.submit"

	buyer := strings.TrimSpace(req.Buyer)
	if buyer == "" {
		return models.OrderRecord{}, apperr.Validation(op, "buyer is required")
	}
	product := strings.TrimSpace(req.Product)
	if product == "" {
		return models.OrderRecord{}, apperr.Validation(op, "product is required")
	}
	raw := strings.TrimSpace(req.Quantity)
	if raw == "" {
		return models.OrderRecord{}, apperr.Validation(op, "quantity is required")
	}
	qty, err := strconv.Atoi(raw)
	if err != nil {
		return models.OrderRecord{}, apperr.Validation(op, "quantity %q is not a whole number", raw)
	}
	if qty < 0 {
		return models.OrderRecord{}, apperr.Validation(op, "quantity must not be negative")
	}
	return models.OrderRecord{Time: s.now(), Buyer: buyer, Product: product, Quantity: qty}, nil
}

// record appends rec and then publishes an OrderCaptured event in the
// background. The append must succeed; publishing is best effort and never
// delays the caller.
func (s *Service) record(ctx context.Context, rec models.OrderRecord, source string) error {
	if err := s.ledger.Append(ctx, rec); err != nil {
		return err
	}
	s.log.Info("order recorded", "buyer", rec.Buyer, "product", rec.Product, "quantity", rec.Quantity, "source", source)

	if s.publisher == nil {
		return nil
	}
	ev := events.OrderCaptured{
		EventID:    s.newID(),
		Buyer:      rec.Buyer,
		Product:    rec.Product,
		Quantity:   rec.Quantity,
		Source:     source,
		OccurredAt: rec.Time,
	}
	// Detached from the request so a finished response does not cancel it.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer cancel()
		if err := s.publisher.Publish(pubCtx, rec.Buyer, ev); err != nil {
			s.log.Warn("failed to publish order event", "error", err, "event_id", ev.EventID)
		}
	}()
	return nil
}

// Wait blocks until every background publish has finished. Call it before
// closing the publisher.
func (s *Service) Wait() {
	s.pending.Wait()
}

func buyerOrDefault(sender string) string {
	if sender = strings.TrimSpace(sender); sender != "" {
		return sender
	}
	return DefaultBuyer
}

func sourceOr(source, fallback string) string {
	if source == "" {
		return fallback
	}
	return source
}
