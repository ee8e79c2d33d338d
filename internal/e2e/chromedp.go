package e2e

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// BrowserConfig configures the chromedp allocator, adapted from the
// teacher's internal/testhelpers.ChromedpConfig.
type BrowserConfig struct {
	Headless   bool
	Timeout    time.Duration
	NoSandbox  bool
	DisableGPU bool
}

// DefaultBrowserConfig returns a sensible headless configuration.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		Headless:   true,
		Timeout:    30 * time.Second,
		NoSandbox:  true,
		DisableGPU: true,
	}
}

// BrowserContext bundles a chromedp context with its combined cancel.
type BrowserContext struct {
	Ctx    context.Context
	Cancel context.CancelFunc
}

// NewBrowserContext builds a chromedp allocator and browser context from
// cfg; callers must defer the returned Cancel.
func NewBrowserContext(cfg BrowserConfig) *BrowserContext {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", cfg.DisableGPU),
		chromedp.Flag("no-sandbox", cfg.NoSandbox),
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	return &BrowserContext{
		Ctx: browserCtx,
		Cancel: func() {
			browserCancel()
			allocCancel()
			cancel()
		},
	}
}

// WaitForWASMInit waits for selector to become visible and gives the
// WASM runtime a moment to finish booting.
func WaitForWASMInit(selector string, settle time.Duration) chromedp.Action {
	return chromedp.Tasks{
		chromedp.WaitVisible(selector, chromedp.ByID),
		chromedp.Sleep(settle),
	}
}

// ConsoleCapture collects browser console.log/warn/error arguments
// emitted while attached, the same way the teacher's example tests
// listen for runtime.EventConsoleAPICalled to observe component
// lifecycle logging from inside the page.
type ConsoleCapture struct {
	mu       sync.Mutex
	messages []string
}

// CaptureConsole attaches a ConsoleCapture to ctx. Call it before
// navigating so no messages are missed.
func CaptureConsole(ctx context.Context) *ConsoleCapture {
	c := &ConsoleCapture{}
	chromedp.ListenTarget(ctx, func(ev any) {
		call, ok := ev.(*runtime.EventConsoleAPICalled)
		if !ok {
			return
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		for _, arg := range call.Args {
			if arg.Value != nil {
				c.messages = append(c.messages, fmt.Sprintf("%v", arg.Value))
			}
		}
	})
	return c
}

// Messages returns a snapshot of every console argument captured so far.
func (c *ConsoleCapture) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.messages))
	copy(out, c.messages)
	return out
}

// Contains reports whether any captured message contains substr.
func (c *ConsoleCapture) Contains(substr string) bool {
	for _, m := range c.Messages() {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}
