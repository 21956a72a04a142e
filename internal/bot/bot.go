// internal/bot/bot.go
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"hw-quote/internal/catalog"
	"hw-quote/internal/domain"
	"hw-quote/internal/llm"
	"hw-quote/internal/pricing"
)

const helpText = "🖥 *Hardware quote*\n\n" +
	"Commands:\n" +
	"`/catalog` — list components and prices\n" +
	"`/discounts` — list discounts\n" +
	"`/calc cpu_1*2 ram_1 discount=vip minus=100` — price a build\n" +
	"`/quote cpu_1 ram_1` — price a build and draft a quotation\n" +
	"`/match i5-13400F, 32GB DDR5, RTX 4060` — match free text to the catalog"

type Assistant interface {
	MatchConfig(ctx context.Context, components map[string][]domain.Component, configText string) (map[string]string, error)
	DraftQuote(ctx context.Context, configText string, total float64) (string, error)
}

// Bot answers chat commands. It is transport-agnostic: cmd/bot feeds it
// Telegram messages and sends back whatever Handle returns.
type Bot struct {
	catalog   *catalog.Service
	assistant Assistant
}

func New(cat *catalog.Service, assistant Assistant) *Bot {
	return &Bot{catalog: cat, assistant: assistant}
}

func (b *Bot) Handle(ctx context.Context, text string) string {
	cmd, args := SplitCommand(text)

	var reply string
	var err error

	switch cmd {
	case "/start", "/help":
		reply = helpText
	case "/catalog":
		reply, err = b.handleCatalog(ctx)
	case "/discounts":
		reply, err = b.handleDiscounts(ctx)
	case "/calc":
		reply, err = b.handleCalc(ctx, args)
	case "/quote":
		reply, err = b.handleQuote(ctx, args)
	case "/match":
		reply, err = b.handleMatch(ctx, args)
	default:
		reply = "Unknown command. Send /help"
	}

	if err != nil {
		slog.Warn("Bot command failed", "command", cmd, "error", err)
		return "❌ Error: " + escapeMarkdown(err.Error())
	}
	return reply
}

func (b *Bot) handleCatalog(ctx context.Context) (string, error) {
	cat, err := b.catalog.Get(ctx)
	if err != nil {
		return "", err
	}
	if len(cat.Components) == 0 {
		return "📭 Catalog is empty", nil
	}

	var lines []string
	for _, category := range sortedCategories(cat) {
		label := category
		if l := cat.Categories[category]; l != "" {
			label = l
		}
		lines = append(lines, fmt.Sprintf("\n*%s*", escapeMarkdown(label)))
		for _, c := range cat.Components[category] {
			if c.ID == domain.PlaceholderID(category) {
				continue
			}
			lines = append(lines, fmt.Sprintf("`%s` %s — %s", c.ID, escapeMarkdown(c.Name), llm.FormatMoney(c.Price)))
		}
	}
	return "🗂 *Catalog*" + strings.Join(lines, "\n"), nil
}

func (b *Bot) handleDiscounts(ctx context.Context) (string, error) {
	cat, err := b.catalog.Get(ctx)
	if err != nil {
		return "", err
	}
	if len(cat.Discounts) == 0 {
		return "📭 No discounts", nil
	}
	lines := []string{"🏷 *Discounts*"}
	for _, d := range cat.Discounts {
		lines = append(lines, fmt.Sprintf("`%s` %s — ×%g", d.ID, escapeMarkdown(d.Name), d.Multiplier))
	}
	return strings.Join(lines, "\n"), nil
}

func (b *Bot) price(ctx context.Context, args string) (pricing.Input, domain.Catalog, float64, error) {
	in, err := ParseCalc(args)
	if err != nil {
		return in, domain.Catalog{}, 0, err
	}
	cat, err := b.catalog.Get(ctx)
	if err != nil {
		return in, domain.Catalog{}, 0, err
	}
	return in, cat, pricing.Calculate(cat, in.Selections, in.DiscountID, in.SpecialReduction), nil
}

func (b *Bot) handleCalc(ctx context.Context, args string) (string, error) {
	in, cat, total, err := b.price(ctx, args)
	if err != nil {
		return "", err
	}
	text := pricing.DescribeSelections(cat, in.Selections)
	if text == "" {
		text = "(nothing selected)"
	}
	return fmt.Sprintf("🧾 %s\n💰 *Total: %s*", escapeMarkdown(text), llm.FormatMoney(total)), nil
}

func (b *Bot) handleQuote(ctx context.Context, args string) (string, error) {
	in, cat, total, err := b.price(ctx, args)
	if err != nil {
		return "", err
	}
	text := pricing.DescribeSelections(cat, in.Selections)
	if text == "" {
		return "", fmt.Errorf("no known components selected")
	}
	quote, err := b.assistant.DraftQuote(ctx, text, total)
	if err != nil {
		return "", err
	}
	// модель пишет CommonMark, а Telegram Markdown его не переваривает
	return escapeMarkdown(quote), nil
}

func (b *Bot) handleMatch(ctx context.Context, args string) (string, error) {
	if strings.TrimSpace(args) == "" {
		return "Usage: /match <configuration text>", nil
	}
	cat, err := b.catalog.Get(ctx)
	if err != nil {
		return "", err
	}
	matched, err := b.assistant.MatchConfig(ctx, cat.Components, args)
	if err != nil {
		return "", err
	}
	if len(matched) == 0 {
		return "🤷 Nothing matched", nil
	}

	categories := make([]string, 0, len(matched))
	for category := range matched {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	lines := []string{"🔍 *Matched*"}
	ids := make([]string, 0, len(matched))
	for _, category := range categories {
		id := matched[category]
		name := "unknown id"
		if c, ok := cat.FindComponent(category, id); ok {
			name = c.Name
			ids = append(ids, id)
		}
		lines = append(lines, fmt.Sprintf("%s: `%s` %s", escapeMarkdown(category), id, escapeMarkdown(name)))
	}
	if len(ids) > 0 {
		lines = append(lines, "\nPrice it with: `/calc "+strings.Join(ids, " ")+"`")
	}
	return strings.Join(lines, "\n"), nil
}

func sortedCategories(cat domain.Catalog) []string {
	out := make([]string, 0, len(cat.Components))
	for category := range cat.Components {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}
