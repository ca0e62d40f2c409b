package runner

import (
	"context"
	"log/slog"
	"time"

	"clickship/internal/game"
)

type Options struct {
	ProductionTick time.Duration
	ShippingTick   time.Duration
	ExpiryEvery    time.Duration
}

func DefaultOptions() Options {
	return Options{
		ProductionTick: time.Second,
		ShippingTick:   time.Second,
		ExpiryEvery:    5 * time.Second,
	}
}

// Runner drives the game clock: production and shipping ticks, order
// arrivals and the expiry sweep. Tickers only run while the state needs
// them.
type Runner struct {
	svc  *game.Service
	log  *slog.Logger
	opts Options
}

func New(svc *game.Service, logger *slog.Logger, opts Options) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	def := DefaultOptions()
	if opts.ProductionTick <= 0 {
		opts.ProductionTick = def.ProductionTick
	}
	if opts.ShippingTick <= 0 {
		opts.ShippingTick = def.ShippingTick
	}
	if opts.ExpiryEvery <= 0 {
		opts.ExpiryEvery = def.ExpiryEvery
	}
	return &Runner{svc: svc, log: logger, opts: opts}
}

type ticker struct {
	t     *time.Ticker
	every time.Duration
}

func (k *ticker) set(active bool, every time.Duration) {
	if !active {
		k.stop()
		return
	}
	if k.t != nil && k.every == every {
		return
	}
	k.stop()
	k.t = time.NewTicker(every)
	k.every = every
}

func (k *ticker) stop() {
	if k.t != nil {
		k.t.Stop()
		k.t = nil
		k.every = 0
	}
}

func (k *ticker) C() <-chan time.Time {
	if k.t == nil {
		return nil
	}
	return k.t.C
}

func (r *Runner) Run(ctx context.Context) error {
	updates, cancel := r.svc.Subscribe()
	defer cancel()

	var production, shipping, expiry, orders ticker
	defer production.stop()
	defer shipping.stop()
	defer expiry.stop()
	defer orders.stop()

	var playing bool
	var business string

	reconcile := func(st game.State) {
		nowPlaying := st.GameState == game.GameStatePlaying
		started := nowPlaying && (!playing || st.CurrentBusinessID != business)
		if !nowPlaying && playing {
			r.log.Info("session paused", "business_id", business)
		}
		playing, business = nowPlaying, st.CurrentBusinessID
		if started {
			r.log.Info("session started", "business_id", business)
			r.svc.GenerateOrder()
			r.svc.CheckExpiredOrders()
		}

		production.set(playing && st.IsProducing, r.opts.ProductionTick)
		shipping.set(playing && st.IsShipping, r.opts.ShippingTick)
		expiry.set(playing, r.opts.ExpiryEvery)
		orders.set(playing, game.OrderInterval(&st))
	}
	reconcile(r.svc.State())

	r.log.Info("runner started",
		"production_tick", r.opts.ProductionTick.String(),
		"shipping_tick", r.opts.ShippingTick.String(),
		"expiry_every", r.opts.ExpiryEvery.String(),
	)
	for {
		select {
		case <-ctx.Done():
			r.log.Info("runner shutdown")
			return nil
		case st, ok := <-updates:
			if !ok {
				return nil
			}
			reconcile(st)
		case <-production.C():
			r.svc.TickProduction()
		case <-shipping.C():
			r.svc.TickShipping()
		case <-expiry.C():
			r.svc.CheckExpiredOrders()
		case <-orders.C():
			r.svc.GenerateOrder()
		}
	}
}
