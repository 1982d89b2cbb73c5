package telegram

import (
	"context"
	"log/slog"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// UpdateHandler processes one already-sequenced update for a user.
type UpdateHandler func(ctx context.Context, b *bot.Bot, update *models.Update)

// Router serializes updates per user so two quick messages from the same
// person cannot interleave inside the form engine, while different users are
// handled concurrently.
type Router struct {
	handler UpdateHandler

	mu    sync.Mutex
	lanes map[int64]chan *queuedUpdate
}

type queuedUpdate struct {
	ctx    context.Context
	bot    *bot.Bot
	update *models.Update
}

func NewRouter(handler UpdateHandler) *Router {
	return &Router{
		handler: handler,
		lanes:   make(map[int64]chan *queuedUpdate),
	}
}

// Dispatch enqueues the update on the sender's lane, starting the lane's
// worker on first use. Updates without a message sender are ignored.
func (r *Router) Dispatch(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	userID := update.Message.From.ID

	r.mu.Lock()
	lane, ok := r.lanes[userID]
	if !ok {
		lane = make(chan *queuedUpdate, 16)
		r.lanes[userID] = lane
		go r.run(lane)
	}
	r.mu.Unlock()

	select {
	case lane <- &queuedUpdate{ctx: ctx, bot: b, update: update}:
	default:
		// drop rather than block the poller
		slog.Warn("update lane full, dropping update", slog.Int64("userID", userID))
	}
}

func (r *Router) run(lane chan *queuedUpdate) {
	for q := range lane {
		if q.ctx.Err() != nil {
			continue
		}
		r.handler(q.ctx, q.bot, q.update)
	}
}
