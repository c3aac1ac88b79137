package telegram

import (
	"fmt"
	"path/filepath"
	"strings"

	"imgfilter/internal/domain/entity"
)

// describeThreshold описывает правило словами: "> 0.50" или "< 0.50 (инверсия)"
func describeThreshold(th entity.Threshold) string {
	if th.Invert {
		return fmt.Sprintf("< %.2f (инверсия)", th.Value)
	}
	return fmt.Sprintf("> %.2f", th.Value)
}

func verdict(positive bool) string {
	if positive {
		return "🔴 дефект"
	}
	return "🟢 норма"
}

func formatInspection(i *entity.Inspection) string {
	var b strings.Builder
	if i.HasDefects {
		b.WriteString(msgDefectsFound)
	} else {
		b.WriteString(msgNoDefects)
	}
	b.WriteString("\n")

	for _, p := range i.Predictions {
		fmt.Fprintf(&b, "\n• %s: %.2f (порог %s) %s", p.Filter, p.Score, describeThreshold(p.Threshold), verdict(p.Positive))
	}
	return b.String()
}

func formatHistory(history []entity.Prediction) string {
	if len(history) == 0 {
		return msgNoHistory
	}

	var b strings.Builder
	b.WriteString("🗂 Последние проверки:")
	for _, p := range history {
		fmt.Fprintf(&b, "\n• %s %s %s: %.2f %s",
			p.CreatedAt.Format("02.01 15:04"), filepath.Base(p.ImagePath), p.Filter, p.Score, verdict(p.Positive))
	}
	return b.String()
}
