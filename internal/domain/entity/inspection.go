package entity

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ComponentOutcome результат проверки одного компонента.
type ComponentOutcome struct {
	Spec   ComponentSpec   // запись манифеста
	Rect   Rectangle       // область в пикселях
	Score  int64           // суммарная разница яркости
	Status ComponentStatus // present или missing
}

// ScoreStats сводка по оценкам, помогает подобрать порог.
type ScoreStats struct {
	Count  int
	Mean   float64
	StdDev float64
	Max    float64
}

// InspectionResult хранит итог проверки платы.
type InspectionResult struct {
	ImageWidth  int                // ширина изображения
	ImageHeight int                // высота изображения
	Components  []ComponentOutcome // классифицированные компоненты в порядке манифеста
	Missing     []string           // имена отсутствующих компонентов в порядке манифеста
	Skipped     []string           // записи с пустой областью, не классифицированы
	Stats       ScoreStats
}

// HasMissing сообщает, найден ли хотя бы один отсутствующий компонент.
func (r *InspectionResult) HasMissing() bool {
	return len(r.Missing) > 0
}

// Add добавляет результат компонента и, если он отсутствует, его имя в Missing.
func (r *InspectionResult) Add(outcome ComponentOutcome) {
	r.Components = append(r.Components, outcome)
	if outcome.Status == StatusMissing {
		r.Missing = append(r.Missing, outcome.Spec.Name)
	}
}

// Finalize пересчитывает Stats по классифицированным компонентам.
func (r *InspectionResult) Finalize() {
	scores := make([]float64, 0, len(r.Components))
	for _, c := range r.Components {
		scores = append(scores, float64(c.Score))
	}
	r.Stats = NewScoreStats(scores)
}

// NewScoreStats считает среднее, стандартное отклонение и максимум.
func NewScoreStats(scores []float64) ScoreStats {
	s := ScoreStats{Count: len(scores)}
	if len(scores) == 0 {
		return s
	}
	s.Max = floats.Max(scores)
	if len(scores) == 1 {
		s.Mean = scores[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(scores, nil)
	return s
}
