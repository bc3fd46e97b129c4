package models

// Plan представляет тарифный план подписки из каталога.
// Список включённых опций Features хранится в базе как JSON-текст,
// сериализация выполняется только на границе хранилища.
type Plan struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	PriceMonthly     float64  `json:"price_monthly"`
	MassagesPerMonth int      `json:"massages_per_month"`
	DurationMinutes  int      `json:"duration_minutes"`
	Features         []string `json:"features"`
	IsActive         bool     `json:"is_active"`
}
