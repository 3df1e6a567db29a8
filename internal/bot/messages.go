package bot

import (
	"fmt"
	"strings"

	"bankrates/internal/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	CallbackCheck = "check_buy"
	CallbackStats = "get_stats"
)

const (
	welcomeText     = "💵 Currency watcher bot is running.\nUse the buttons below to check the dollar rates."
	helpText        = "Send /start to get the menu."
	noDataText      = "No rates available right now, please try again later."
	checkFailedText = "Could not refresh rates right now, please try again later."
	statsFailedText = "Could not prepare statistics right now, please try again later."
)

func keyboard(statsDays int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Check current rates", CallbackCheck),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("Statistics (%d days)", statsDays), CallbackStats),
		),
	)
}

func noStatsText(days int) string {
	return fmt.Sprintf("No rates recorded during the last %d days yet.", days)
}

// formatReport renders a ready report. The trend block is omitted when there is no history.
func formatReport(report domain.Report, trendDays int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Best bank to buy dollars now: %s (sell: %s)\n", report.Cheapest.Bank, report.Cheapest.Sell)
	fmt.Fprintf(&sb, "💰 Best bank to sell dollars now: %s (buy: %s)\n", report.Priciest.Bank, report.Priciest.Buy)
	if report.Favorable() {
		fmt.Fprintf(&sb, "⚡ Profit opportunity: %s soum\n", report.Margin.StringFixed(2))
	} else {
		sb.WriteString("❌ Not favorable right now\n")
	}

	if len(report.Trend) > 0 {
		fmt.Fprintf(&sb, "📈 Average sell rate over the last %d days:\n", trendDays)
		for _, avg := range report.Trend {
			fmt.Fprintf(&sb, "%s: %s soum\n", avg.Bank, avg.AvgSell.StringFixed(2))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
