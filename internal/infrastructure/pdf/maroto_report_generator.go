// Package pdf implémente le rendu des rapports comptables en PDF.
//
// Layout de la page A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nom du commerce  │  Type de rapport + Période      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RÉSUMÉ: Ventes / Dépenses / Bénéfice net / Épargne nette   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE VENTES: Date | Produit | Qté | P.Unit | Total        │
//	│  TABLE DÉPENSES: Date | Description | Catégorie | Montant   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: date de génération                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/cosmolab/akompta-api/internal/application/reporting"
	"github.com/cosmolab/akompta-api/internal/domain/entity"
)

var _ reporting.PDFGenerator = (*MarotoReportGenerator)(nil)

// ── Palette de couleurs ───────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 105, Blue: 92}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 40, Blue: 40}
)

// Libellés par type de rapport.
var reportTitles = map[string]string{
	entity.ReportDaily:   "RAPPORT JOURNALIER",
	entity.ReportWeekly:  "RAPPORT HEBDOMADAIRE",
	entity.ReportMonthly: "RAPPORT MENSUEL",
	entity.ReportAnnual:  "RAPPORT ANNUEL",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implémente reporting.PDFGenerator avec Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construit le générateur.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// Generate rend le rapport en PDF et retourne ses octets.
func (g *MarotoReportGenerator) Generate(snapshot *reporting.ReportSnapshot) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Rapport Akompta", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(snapshot))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(snapshot)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitleRow(fmt.Sprintf("VENTES (%d)", snapshot.SalesCount)))
	if len(snapshot.Sales) == 0 {
		m.AddRows(emptyRow("Aucune vente sur la période."))
	} else {
		m.AddRows(salesHeaderRow())
		m.AddRows(salesDetailRows(snapshot.Sales)...)
		if rest := snapshot.SalesCount - len(snapshot.Sales); rest > 0 {
			m.AddRows(overflowRow(fmt.Sprintf("… et %d autres ventes", rest)))
		}
	}

	m.AddRows(line.NewRow(2))
	m.AddRows(sectionTitleRow(fmt.Sprintf("DÉPENSES (%d)", snapshot.ExpensesCount)))
	if len(snapshot.Expenses) == 0 {
		m.AddRows(emptyRow("Aucune dépense sur la période."))
	} else {
		m.AddRows(expensesHeaderRow())
		m.AddRows(expenseDetailRows(snapshot.Expenses)...)
		if rest := snapshot.ExpensesCount - len(snapshot.Expenses); rest > 0 {
			m.AddRows(overflowRow(fmt.Sprintf("… et %d autres dépenses", rest)))
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(snapshot))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: générer le document: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

// headerRow: nom du commerce (gauche), type de rapport + période (droite).
func headerRow(snapshot *reporting.ReportSnapshot) core.Row {
	business := snapshot.Owner.BusinessName
	if business == "" {
		business = snapshot.Owner.Username
	}
	title, ok := reportTitles[snapshot.ReportType]
	if !ok {
		title = "RAPPORT"
	}
	// PeriodEnd est exclusif, le dernier jour couvert est la veille.
	period := fmt.Sprintf("Du %s au %s",
		snapshot.PeriodStart.Format("02/01/2006"),
		snapshot.PeriodEnd.AddDate(0, 0, -1).Format("02/01/2006"))

	return row.New(18).Add(
		col.New(7).Add(
			text.New(business, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Akompta · Comptabilité du commerçant", props.Text{
				Size: 8, Top: 10, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(period, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// summaryRows: le bloc des quatre agrégats de la période.
func summaryRows(snapshot *reporting.ReportSnapshot) []core.Row {
	profitColor := colorPrimary
	if snapshot.NetProfit.IsNegative() {
		profitColor = colorRed
	}

	metric := func(label, value string, c *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center,
				Color: c, Top: 8,
			}),
		)
	}

	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("RÉSUMÉ DE LA PÉRIODE", props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(18).Add(
			metric("Ventes", fcfa(snapshot.TotalSales), colorPrimary),
			metric("Dépenses", fcfa(snapshot.TotalExpenses), colorRed),
			metric("Bénéfice net", fcfa(snapshot.NetProfit), profitColor),
			metric("Épargne nette", fcfa(snapshot.TotalSavings), colorPrimary),
		),
	}
}

func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}),
	))
}

// salesHeaderRow: en-tête de la table des ventes.
func salesHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorGray, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Date", 2, align.Left),
		h("Produit", 4, align.Left),
		h("Qté", 1, align.Center),
		h("P. Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

func salesDetailRows(sales []*entity.Sale) []core.Row {
	result := make([]core.Row, 0, len(sales))
	for _, s := range sales {
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(
				s.SaleDate.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				s.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", s.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				fcfa(s.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				fcfa(s.TotalAmount),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func expensesHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorGray, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Date", 2, align.Left),
		h("Description", 5, align.Left),
		h("Catégorie", 2, align.Left),
		h("Montant", 3, align.Right),
	)
}

func expenseDetailRows(expenses []*entity.Expense) []core.Row {
	result := make([]core.Row, 0, len(expenses))
	for _, e := range expenses {
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(
				e.ExpenseDate.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(5).Add(text.New(
				e.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				e.Category,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				fcfa(e.Amount),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func emptyRow(message string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(message, props.Text{
			Size: 8, Color: colorGray, Top: 1, Left: 1,
		}),
	))
}

func overflowRow(message string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(message, props.Text{
			Size: 8, Color: colorGray, Top: 1, Left: 1, Style: fontstyle.Italic,
		}),
	))
}

func footerRow(snapshot *reporting.ReportSnapshot) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			fmt.Sprintf("Rapport généré le %s · Akompta · Montants en FCFA",
				snapshot.GeneratedAt.Format("02/01/2006 à 15:04")),
			props.Text{Size: 7, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// fcfa formate un montant sans décimales avec séparateur de milliers.
// Ex: 25000 → "25 000 FCFA"
func fcfa(d decimal.Decimal) string {
	s := d.StringFixed(0)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	n := len(s)
	if n > 3 {
		buf := make([]byte, 0, n+n/3)
		for i := 0; i < n; i++ {
			if i > 0 && (n-i)%3 == 0 {
				buf = append(buf, ' ')
			}
			buf = append(buf, s[i])
		}
		s = string(buf)
	}
	if neg {
		s = "-" + s
	}
	return s + " FCFA"
}
