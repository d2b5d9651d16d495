package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"

	"github.com/example/courtsched/internal/ui"
)

type page struct {
	b *Browser
}

func (p *page) Navigate(ctx context.Context, url string) error {
	return p.b.run(ctx, actionTimeout,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

func (p *page) ByRole(role ui.Role, name string, exact bool) ui.Query {
	lit := xpathLiteral(name)
	match := fmt.Sprintf("contains(normalize-space(.), %s)", lit)
	if exact {
		match = fmt.Sprintf("normalize-space(.)=%s", lit)
	}

	var sel string
	switch role {
	case ui.RoleLink:
		sel = fmt.Sprintf(`//a[%s]`, match)
	case ui.RoleTextbox:
		// Accessible name on this site comes from aria-label or placeholder.
		sel = fmt.Sprintf(`//input[@aria-label=%[1]s or @placeholder=%[1]s or @name=%[1]s]`, lit)
	default:
		sel = fmt.Sprintf(`//*[self::button or @role="button"][%s]`, match)
	}
	return &query{b: p.b, sel: sel}
}

func (p *page) BySlotText(text string) ui.Query {
	// Unavailable slot buttons carry the "red" marker class.
	sel := fmt.Sprintf(
		`//button[contains(normalize-space(.), %s) and not(contains(concat(" ", normalize-space(@class), " "), " red "))]`,
		xpathLiteral(text))
	return &query{b: p.b, sel: sel}
}

type query struct {
	b   *Browser
	sel string
}

func (q *query) Count(ctx context.Context) (int, error) {
	var nodes []*cdp.Node
	err := q.b.run(ctx, probeTimeout,
		chromedp.Nodes(q.sel, &nodes, chromedp.BySearch, chromedp.AtLeast(0)))
	if err != nil {
		return 0, fmt.Errorf("browser: count %s: %w", q.sel, err)
	}
	return len(nodes), nil
}

func (q *query) Click(ctx context.Context) error {
	if err := q.b.run(ctx, actionTimeout, chromedp.Click(q.sel, chromedp.BySearch)); err != nil {
		return fmt.Errorf("browser: click %s: %w", q.sel, err)
	}
	return nil
}

func (q *query) Fill(ctx context.Context, text string) error {
	err := q.b.run(ctx, actionTimeout,
		chromedp.Click(q.sel, chromedp.BySearch),
		chromedp.SendKeys(q.sel, text, chromedp.BySearch),
	)
	if err != nil {
		return fmt.Errorf("browser: fill %s: %w", q.sel, err)
	}
	return nil
}

func (q *query) Press(ctx context.Context, key string) error {
	if err := q.b.run(ctx, actionTimeout, chromedp.SendKeys(q.sel, keyChord(key), chromedp.BySearch)); err != nil {
		return fmt.Errorf("browser: press %s on %s: %w", key, q.sel, err)
	}
	return nil
}

func (q *query) Nth(i int) ui.Query {
	// XPath node-set indexing is 1-based.
	return &query{b: q.b, sel: fmt.Sprintf("(%s)[%d]", q.sel, i+1)}
}

func (q *query) First() ui.Query { return q.Nth(0) }

func keyChord(key string) string {
	switch key {
	case "Tab":
		return kb.Tab
	case "Enter":
		return kb.Enter
	default:
		return key
	}
}

// xpathLiteral quotes s as an XPath string literal. XPath 1.0 has no escape
// syntax, so strings containing both quote kinds fall back to concat().
func xpathLiteral(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, `'`) {
		return `'` + s + `'`
	}
	var b strings.Builder
	b.WriteString("concat(")
	for i, part := range strings.Split(s, `"`) {
		if i > 0 {
			b.WriteString(`, '"', `)
		}
		b.WriteString(`"` + part + `"`)
	}
	b.WriteString(")")
	return b.String()
}
