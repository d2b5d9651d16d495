// Package browser implements the ui automation surface with chromedp,
// driving a headless Chrome against the booking site.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/example/courtsched/internal/ui"
)

const (
	actionTimeout = 15 * time.Second
	probeTimeout  = 5 * time.Second
)

// Browser is one scoped Chrome acquisition. Close releases the tab and the
// browser process on every exit path.
type Browser struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
}

// Open launches Chrome and returns a session bound to parent. Open fails
// fast if the browser cannot start, before any workflow step runs.
func Open(parent context.Context, headless bool) (*Browser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.WindowSize(1366, 960),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(ctx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("browser: launch: %w", err)
	}
	return &Browser{ctx: ctx, cancel: cancel, allocCancel: allocCancel}, nil
}

func (b *Browser) Page() ui.Page { return &page{b: b} }

func (b *Browser) Close() {
	b.cancel()
	b.allocCancel()
}

func (b *Browser) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	// chromedp actions run on the session context; the caller's context and
	// the per-action timeout both bound them.
	tctx, tcancel := context.WithTimeout(b.ctx, timeout)
	defer tcancel()
	stop := context.AfterFunc(ctx, tcancel)
	defer stop()
	return chromedp.Run(tctx, actions...)
}
