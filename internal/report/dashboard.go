package report

import (
	"strconv"
	"time"

	"github.com/Veraticus/supply-flow/internal/model"
	"github.com/Veraticus/supply-flow/internal/rollup"
	"github.com/shopspring/decimal"
)

// Dashboard is the overview: spend per company and the account plan tree.
type Dashboard struct {
	Start     *time.Time      `json:"start,omitempty"`
	End       *time.Time      `json:"end,omitempty"`
	Search    string          `json:"search,omitempty"`
	Records   int             `json:"records"`
	Total     decimal.Decimal `json:"total"`
	Companies rollup.Ranking  `json:"companies"`
	Tree      rollup.Tree     `json:"tree"`
}

// NewDashboard filters records on company, supplier, account plan and item, then
// ranks companies and builds the account plan > category > supplier tree.
func NewDashboard(records []model.PurchaseRecord, opts Options) *Dashboard {
	filtered := opts.filter(records, DashboardFields)
	tree := rollup.BuildTree(filtered, opts.Quantity, rollup.ByAccountPlan, rollup.ByCategory, rollup.BySupplier)

	return &Dashboard{
		Start:     opts.Start,
		End:       opts.End,
		Search:    opts.Search,
		Records:   len(filtered),
		Total:     tree.Total,
		Companies: rollup.Flat(filtered, rollup.ByCompany, rollup.TotalValue),
		Tree:      tree,
	}
}

// Title implements Report.
func (d *Dashboard) Title() string {
	return "Purchasing dashboard"
}

// Summary implements Report.
func (d *Dashboard) Summary() []Stat {
	return []Stat{
		{Label: "Period", Value: formatWindow(d.Start, d.End)},
		{Label: "Records", Value: strconv.Itoa(d.Records)},
		{Label: "Total spend", Value: money(d.Total)},
		{Label: "Companies", Value: strconv.Itoa(len(d.Companies.Groups))},
	}
}

// Tables implements Report.
func (d *Dashboard) Tables() []Table {
	companies := Table{
		Title:   "Companies",
		Header:  []string{"Company", "Records", "Total", "Share"},
		Numeric: []int{1, 2, 3},
	}
	for i, g := range d.Companies.Groups {
		companies.Rows = append(companies.Rows, []string{
			g.Key, strconv.Itoa(g.Count), money(g.Total), percent(d.Companies.Share(i)),
		})
	}

	accounts := Table{
		Title:   "Accounts",
		Header:  []string{"Account plan", "Category", "Supplier", "Total", "Share"},
		Numeric: []int{3, 4},
	}
	var visit func(path []string, n *rollup.Node)
	visit = func(path []string, n *rollup.Node) {
		path = append(path, n.Key)
		row := make([]string, 3, 5)
		copy(row, path)
		row = append(row, money(n.Total), percent(rollup.SharePercent(n.Total, d.Tree.Total)))
		accounts.Rows = append(accounts.Rows, row)
		for _, c := range n.Children {
			visit(path, c)
		}
	}
	for _, n := range d.Tree.Nodes {
		visit(nil, n)
	}

	materials := Table{
		Title:   "Materials",
		Header:  []string{"Account plan", "Category", "Supplier", "Item", "Unit", "Quantity", "Total", "Average price", "Purchases"},
		Numeric: []int{5, 6, 7, 8},
	}
	d.Tree.Walk(func(path []string, item *rollup.GroupedItem) {
		row := make([]string, 3, 9)
		copy(row, path)
		row = append(row,
			item.Description,
			item.Unit,
			item.TotalQuantity.String(),
			money(item.TotalValue),
			money(item.AveragePrice()),
			strconv.Itoa(item.OccurrenceCount),
		)
		materials.Rows = append(materials.Rows, row)
	})

	return []Table{companies, accounts, materials}
}
