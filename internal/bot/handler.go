package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/anatoliyserebry/cryptowatchlive/internal/entity"
	"github.com/anatoliyserebry/cryptowatchlive/internal/repo"
	"github.com/anatoliyserebry/cryptowatchlive/internal/service/rate"
	"github.com/samber/lo"
)

const watchUsage = "Usage: watch <BASE> <op> <threshold> <QUOTE?>\n" +
	"Examples:\n" +
	"  watch BTC > 30000 USD\n" +
	"  watch EUR < 95 RUB\n" +
	"  watch ETH >= 0.06 BTC"

const helpText = "I track currency and crypto rates and ping you when a price crosses your threshold.\n\n" +
	"Commands:\n" +
	"  watch <BASE> <op> <threshold> <QUOTE?> - create a subscription\n" +
	"  price <BASE> <QUOTE> - current rate\n" +
	"  list - your subscriptions\n" +
	"  pause <id> / resume <id> - suspend/resume\n" +
	"  remove <id> - delete one\n" +
	"  clear - delete all\n" +
	"  mute / unmute - toggle notifications"

// Handler 把文本命令映射到存储与行情解析调用.
// 传输层(聊天SDK)在外部, 这里只做 请求 -> 应答文本.
type Handler struct {
	users repo.UserRepo
	subs  repo.SubscriptionRepo
	rates rate.Service
}

func NewHandler(users repo.UserRepo, subs repo.SubscriptionRepo, rates rate.Service) *Handler {
	return &Handler{
		users: users,
		subs:  subs,
		rates: rates,
	}
}

func (h *Handler) Handle(ctx context.Context, ownerId int64, text string) string {
	if err := h.users.EnsureExists(ctx, ownerId); err != nil {
		slog.Error("failed to ensure user", "owner", ownerId, "error", err)
	}

	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "/"))
	cmd, body, _ := strings.Cut(text, " ")

	switch strings.ToLower(cmd) {
	case "start", "help", "menu":
		return helpText
	case "watch":
		return h.watch(ctx, ownerId, body)
	case "price":
		return h.price(ctx, body)
	case "list":
		return h.list(ctx, ownerId)
	case "pause":
		return h.setActive(ctx, ownerId, body, false)
	case "resume":
		return h.setActive(ctx, ownerId, body, true)
	case "remove":
		return h.remove(ctx, ownerId, body)
	case "clear":
		return h.clear(ctx, ownerId)
	case "mute":
		return h.setMuted(ctx, ownerId, true)
	case "unmute":
		return h.setMuted(ctx, ownerId, false)
	default:
		return "Unknown command.\n\n" + helpText
	}
}

func (h *Handler) watch(ctx context.Context, ownerId int64, body string) string {
	args, ok := ParseWatchArgs(body)
	if !ok {
		return watchUsage
	}
	id, err := h.subs.Create(ctx, entity.Subscription{
		OwnerId:   ownerId,
		Base:      args.Base,
		Quote:     args.Quote,
		AssetType: rate.Classify(args.Base, args.Quote),
		Operator:  args.Operator,
		Threshold: args.Threshold,
		IsActive:  true,
		CreatedAt: time.Now(),
	})
	if err != nil {
		slog.Error("failed to create subscription", "owner", ownerId, "error", err)
		return "Could not save the subscription, please try again later."
	}
	return fmt.Sprintf("Subscription #%d created: %s/%s %s %v.\nI will notify you when the condition fires.",
		id, args.Base, args.Quote, args.Operator, args.Threshold)
}

func (h *Handler) price(ctx context.Context, body string) string {
	parts := strings.Fields(body)
	if len(parts) < 2 {
		return "Usage: price <BASE> <QUOTE>\nExample: price BTC USD"
	}
	base, quote := strings.ToUpper(parts[0]), strings.ToUpper(parts[1])

	q, err := h.rates.Resolve(ctx, base, quote)
	if err != nil {
		slog.Warn("on-demand price failed", "base", base, "quote", quote, "error", err)
		return fmt.Sprintf("Could not retrieve price for %s/%s, please try again later.", base, quote)
	}

	ch := ""
	if q.Change != nil {
		ch = fmt.Sprintf(" (%+.2f%% 24h)", *q.Change)
	}
	reply := fmt.Sprintf("Current rate %s/%s: %.8f%s", base, quote, q.Price, ch)
	for _, link := range PairLinks(base, quote) {
		reply += fmt.Sprintf("\n%s: %s", link.Title, link.URL)
	}
	return reply
}

func (h *Handler) list(ctx context.Context, ownerId int64) string {
	subs, err := h.subs.FindByOwner(ctx, ownerId)
	if err != nil {
		slog.Error("failed to list subscriptions", "owner", ownerId, "error", err)
		return "Could not load your subscriptions, please try again later."
	}
	if len(subs) == 0 {
		return "You have no subscriptions yet. Add one: watch BTC > 30000 USD"
	}
	lines := lo.Map(subs, func(s entity.Subscription, _ int) string {
		status := "active"
		if !s.IsActive {
			status = "paused"
		}
		return fmt.Sprintf("#%d: %s/%s %s %v [%s]", s.Id, s.Base, s.Quote, s.Operator, s.Threshold, status)
	})
	return "Your subscriptions:\n" + strings.Join(lines, "\n")
}

func (h *Handler) setActive(ctx context.Context, ownerId int64, body string, active bool) string {
	verb := "paused"
	usage := "pause"
	if active {
		verb = "resumed"
		usage = "resume"
	}
	id, ok := parseId(body)
	if !ok {
		return fmt.Sprintf("Specify an id: %s 3", usage)
	}
	found, err := h.subs.UpdateStatus(ctx, id, ownerId, active)
	if err != nil {
		slog.Error("failed to update subscription status", "id", id, "owner", ownerId, "error", err)
		return "Could not update the subscription, please try again later."
	}
	if !found {
		return fmt.Sprintf("Subscription #%d not found.", id)
	}
	return fmt.Sprintf("Subscription #%d %s.", id, verb)
}

func (h *Handler) remove(ctx context.Context, ownerId int64, body string) string {
	id, ok := parseId(body)
	if !ok {
		return "Specify an id: remove 3"
	}
	found, err := h.subs.Delete(ctx, id, ownerId)
	if err != nil {
		slog.Error("failed to delete subscription", "id", id, "owner", ownerId, "error", err)
		return "Could not delete the subscription, please try again later."
	}
	if !found {
		return fmt.Sprintf("Subscription #%d not found.", id)
	}
	return fmt.Sprintf("Subscription #%d deleted.", id)
}

func (h *Handler) clear(ctx context.Context, ownerId int64) string {
	count, err := h.subs.DeleteByOwner(ctx, ownerId)
	if err != nil {
		slog.Error("failed to clear subscriptions", "owner", ownerId, "error", err)
		return "Could not delete your subscriptions, please try again later."
	}
	return fmt.Sprintf("Deleted %d subscription(s).", count)
}

func (h *Handler) setMuted(ctx context.Context, ownerId int64, muted bool) string {
	if err := h.users.SetMuted(ctx, ownerId, muted); err != nil {
		slog.Error("failed to set mute flag", "owner", ownerId, "error", err)
		return "Could not update notification settings, please try again later."
	}
	if muted {
		return "Notifications muted. Send unmute to re-enable."
	}
	return "Notifications enabled."
}

func parseId(body string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(body), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
