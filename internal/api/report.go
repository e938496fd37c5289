package telegram

import (
	"fmt"
	"strings"

	"pcb-inspector/internal/domain/entity"
)

// formatReport собирает текстовый отчёт о проверке платы.
func formatReport(result *entity.InspectionResult) string {
	var sb strings.Builder

	checked := len(result.Components)
	if result.HasMissing() {
		fmt.Fprintf(&sb, "❌ Отсутствуют компоненты (%d из %d):\n", len(result.Missing), checked)
		for _, name := range result.Missing {
			fmt.Fprintf(&sb, "• %s\n", name)
		}
	} else {
		fmt.Fprintf(&sb, "✅ Все компоненты на месте (проверено: %d).\n", checked)
	}

	if len(result.Skipped) > 0 {
		fmt.Fprintf(&sb, "\n⚠️ Пропущены записи вне изображения: %s\n", strings.Join(result.Skipped, ", "))
	}

	if result.Stats.Count > 0 {
		fmt.Fprintf(&sb, "\n📊 Разница яркости: среднее %.0f, σ %.0f, максимум %.0f\n",
			result.Stats.Mean, result.Stats.StdDev, result.Stats.Max)
	}

	return strings.TrimRight(sb.String(), "\n")
}

// formatCaption короткая подпись к фото с разметкой.
func formatCaption(result *entity.InspectionResult) string {
	if result.HasMissing() {
		return fmt.Sprintf("Отсутствует: %d", len(result.Missing))
	}
	return "Все компоненты на месте"
}
