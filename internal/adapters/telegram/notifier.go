// Package telegram pushes risk alerts and fetch reports to a configured chat.
package telegram

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/apetrov/econ-tracker/internal/adapters/config"
	"github.com/apetrov/econ-tracker/pkg/logger"
	"github.com/apetrov/econ-tracker/pkg/models"
)

// Notifier sends alerts to the configured Telegram chat
type Notifier struct {
	api             *tgbotapi.BotAPI
	cfg             *config.TelegramConfig
	templateManager *TemplateManager

	lastRisk models.RiskLevel
}

// NewNotifier creates new Telegram notifier
func NewNotifier(cfg *config.TelegramConfig, templateManager *TemplateManager) (*Notifier, error) {
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	bot.Debug = false

	logger.Info("telegram notifier initialized",
		zap.String("bot_username", bot.Self.UserName),
	)

	return &Notifier{
		api:             bot,
		cfg:             cfg,
		templateManager: templateManager,
		lastRisk:        models.RiskLow,
	}, nil
}

// SendRiskAlert notifies the chat when overall risk escalates. Alerts fire
// only on transitions into high or critical, never on de-escalation.
func (n *Notifier) SendRiskAlert(analysis models.CorrelationAnalysis) error {
	if !n.cfg.AlertOnRisk {
		return nil
	}

	escalated := riskRank(analysis.OverallRisk) > riskRank(n.lastRisk)
	alertable := analysis.OverallRisk == models.RiskHigh || analysis.OverallRisk == models.RiskCritical
	n.lastRisk = analysis.OverallRisk

	if !escalated || !alertable {
		return nil
	}

	emoji := "⚠️"
	if analysis.OverallRisk == models.RiskCritical {
		emoji = "🚨"
	}

	patternTitles := make([]string, 0, len(analysis.Patterns))
	for _, p := range analysis.Patterns {
		patternTitles = append(patternTitles, p.Title)
	}

	data := map[string]interface{}{
		"Emoji":    emoji,
		"Risk":     string(analysis.OverallRisk),
		"Summary":  analysis.Summary,
		"Patterns": patternTitles,
		"Time":     time.Now().Format("2006-01-02 15:04"),
	}

	msg, err := n.templateManager.ExecuteTemplate("risk_alert.tmpl", data)
	if err != nil {
		return err
	}

	return n.sendMessageMarkdown(msg)
}

// SendFetchError reports a failed fetch for one series
func (n *Notifier) SendFetchError(seriesName string, fetchErr error) error {
	if !n.cfg.AlertOnError {
		return nil
	}

	data := map[string]interface{}{
		"Series": seriesName,
		"Error":  fetchErr.Error(),
		"Time":   time.Now().Format("2006-01-02 15:04"),
	}

	msg, err := n.templateManager.ExecuteTemplate("fetch_error.tmpl", data)
	if err != nil {
		return err
	}

	return n.sendMessageMarkdown(msg)
}

// SendFetchSummary reports the outcome of a full fetch cycle
func (n *Notifier) SendFetchSummary(fetched, upserted, failed int, elapsed time.Duration) error {
	if !n.cfg.AlertOnError || failed == 0 {
		return nil
	}

	data := map[string]interface{}{
		"Fetched":  fetched,
		"Upserted": upserted,
		"Failed":   failed,
		"Elapsed":  elapsed.Round(time.Second).String(),
	}

	msg, err := n.templateManager.ExecuteTemplate("fetch_summary.tmpl", data)
	if err != nil {
		return err
	}

	return n.sendMessageMarkdown(msg)
}

func (n *Notifier) sendMessageMarkdown(text string) error {
	msg := tgbotapi.NewMessage(n.cfg.ChatID, text)
	msg.ParseMode = "Markdown"

	_, err := n.api.Send(msg)
	if err != nil {
		logger.Error("failed to send telegram message",
			zap.Int64("chat_id", n.cfg.ChatID),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func riskRank(risk models.RiskLevel) int {
	switch risk {
	case models.RiskCritical:
		return 3
	case models.RiskHigh:
		return 2
	case models.RiskMedium:
		return 1
	default:
		return 0
	}
}
