package worker

import (
	"context"
	"log/slog"
	"time"

	"ordertrack/internal/service"
)

// AlertReporter periodically logs how many orders are at risk of missing
// their deadline. It only counts; the expiry sweep stays inside the list
// path and never runs here.
type AlertReporter struct {
	orders   *service.OrderStore
	interval time.Duration
}

func NewAlertReporter(orders *service.OrderStore, interval time.Duration) *AlertReporter {
	return &AlertReporter{orders: orders, interval: interval}
}

func (w *AlertReporter) Start(ctx context.Context) {
	slog.Info("starting alert reporter", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("alert reporter stopped")
			return
		case <-ticker.C:
			if n := w.orders.AtRiskCount(); n > 0 {
				slog.Warn("orders approaching deadline", "atRisk", n)
			}
		}
	}
}
