package reporting

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cosmolab/akompta-api/internal/domain"
	"github.com/cosmolab/akompta-api/internal/domain/entity"
)

// Tendances d'une métrique entre deux fenêtres consécutives.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// Périodes du tableau de bord.
const (
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// Window est une fenêtre temporelle [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Previous retourne la fenêtre de même longueur qui précède immédiatement.
func (w Window) Previous() Window {
	length := w.End.Sub(w.Start)
	return Window{Start: w.Start.Add(-length), End: w.Start}
}

// midnight retourne le début du jour de t, dans sa zone horaire.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DashboardWindow traduit une période du tableau de bord en fenêtre ancrée
// au début du jour courant. "today" par défaut pour une valeur inconnue.
func DashboardWindow(period string, now time.Time) Window {
	anchor := midnight(now)
	switch period {
	case PeriodWeek:
		return Window{Start: anchor.AddDate(0, 0, -7), End: now}
	case PeriodMonth:
		return Window{Start: anchor.AddDate(0, 0, -30), End: now}
	default:
		return Window{Start: anchor, End: now}
	}
}

// ReportWindow traduit un type de rapport en fenêtre rétrospective ancrée au
// début du jour courant. ErrInvalidInput pour un type inconnu.
func ReportWindow(reportType string, now time.Time) (Window, error) {
	anchor := midnight(now)
	switch reportType {
	case entity.ReportDaily:
		return Window{Start: anchor, End: now}, nil
	case entity.ReportWeekly:
		return Window{Start: anchor.AddDate(0, 0, -7), End: now}, nil
	case entity.ReportMonthly:
		return Window{Start: anchor.AddDate(0, 0, -30), End: now}, nil
	case entity.ReportAnnual:
		return Window{Start: anchor.AddDate(0, 0, -365), End: now}, nil
	default:
		return Window{}, fmt.Errorf("%w: type de rapport invalide: %s", domain.ErrInvalidInput, reportType)
	}
}

// Trend compare la valeur courante à la précédente. La comparaison est
// stricte : toute différence, même minime, bascule la tendance.
func Trend(current, previous decimal.Decimal) string {
	switch current.Cmp(previous) {
	case 1:
		return TrendUp
	case -1:
		return TrendDown
	default:
		return TrendStable
	}
}

// ChangePercent calcule la variation en pourcentage entre deux fenêtres.
// Une base nulle donne 100% si la valeur courante est non nulle, 0% sinon.
func ChangePercent(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsZero() {
			return decimal.Zero
		}
		return decimal.NewFromInt(100)
	}
	hundred := decimal.NewFromInt(100)
	return current.Sub(previous).Div(previous).Mul(hundred).Round(2)
}
