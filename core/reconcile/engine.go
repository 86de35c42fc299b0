package reconcile

import "strings"

// pass holds the working state of one reconciliation call.
type pass struct {
	rows []ProductRow
	opts Options

	// oldVisibility is captured before the first row is touched and never updated.
	oldVisibility []Visibility
	// transitions records committed visibility changes by row index.
	transitions map[int]Visibility

	bundle        []bool
	bundlesByName map[string][]int
	nonBundleName map[string]bool

	report *Report
}

// Reconcile updates stock and visibility of local rows from the supplier index.
// The input slice is not modified; the returned slice has the same length and order.
// The UnmatchedByCode and DuplicateCodes views are left empty, see Run.
func Reconcile(rows []ProductRow, index *SupplierIndex, opts Options) ([]ProductRow, *Report) {
	p := newPass(rows, opts)

	for i := range p.rows {
		if opts.Ignore.Contains(p.rows[i].Code) {
			continue
		}

		// 1. Resolve target stock by code, then by normalized name
		stock, ok := index.Resolve(p.rows[i].Code, p.rows[i].Name)
		if !ok {
			p.markMissing(i)
			continue
		}

		// 2. Stock update
		if p.rows[i].Stock != stock {
			p.rows[i].Stock = stock
			p.report.StockChanges++
		}

		// 3. Cascade to bundle variants sharing the name
		for _, j := range p.bundlesByName[p.rows[i].Name] {
			if j == i || opts.Ignore.Contains(p.rows[j].Code) {
				continue
			}
			p.rows[j].Stock = stock
			limit := opts.Thresholds.BundleThreshold(ClassifyVolume(p.rows[j].VariantVolume))
			p.commit(j, visibilityFor(stock, limit))
		}

		// 4. Direct visibility update
		if !p.bundle[i] {
			p.commit(i, visibilityFor(stock, opts.Thresholds.MinStockToShow))
		}
	}

	p.finish()
	return p.rows, p.report
}

func newPass(rows []ProductRow, opts Options) *pass {
	p := &pass{
		rows:          make([]ProductRow, len(rows)),
		opts:          opts,
		oldVisibility: make([]Visibility, len(rows)),
		transitions:   make(map[int]Visibility),
		bundle:        make([]bool, len(rows)),
		bundlesByName: make(map[string][]int),
		nonBundleName: make(map[string]bool),
		report:        newReport(),
	}
	copy(p.rows, rows)

	for i, row := range p.rows {
		p.oldVisibility[i] = ParseVisibility(row.Visibility)
		p.bundle[i] = opts.IsBundle(row.Category)
		if p.bundle[i] {
			p.bundlesByName[row.Name] = append(p.bundlesByName[row.Name], i)
		} else {
			p.nonBundleName[strings.TrimSpace(row.Name)] = true
		}
	}

	return p
}

// commit sets the visibility of row i and tracks whether it differs from the snapshot.
func (p *pass) commit(i int, v Visibility) {
	p.rows[i].Visibility = string(v)
	if v != p.oldVisibility[i] {
		p.transitions[i] = v
	} else {
		delete(p.transitions, i)
	}
}

// markMissing handles a row without a supplier counterpart.
// A bundle variant whose name is shared with a non-bundle row is left to that row.
func (p *pass) markMissing(i int) {
	row := &p.rows[i]
	if p.bundle[i] && p.nonBundleName[strings.TrimSpace(row.Name)] {
		return
	}

	row.Visibility = string(Hidden)
	delete(p.transitions, i)

	p.report.MissingProducts = append(p.report.MissingProducts, *row)
	if !p.bundle[i] {
		p.report.MissingExcludingBundles = append(p.report.MissingExcludingBundles, *row)
	}
}

func (p *pass) finish() {
	for i, row := range p.rows {
		v, changed := p.transitions[i]
		if !changed {
			continue
		}
		switch v {
		case Hidden:
			p.report.NewlyHidden = append(p.report.NewlyHidden, row)
		case Visible:
			p.report.NewlyVisible = append(p.report.NewlyVisible, row)
		}
	}
	p.report.HiddenCount = len(p.report.NewlyHidden)
	p.report.VisibleCount = len(p.report.NewlyVisible)
	p.report.TotalVisible = CountVisible(p.rows)
}

func visibilityFor(stock, threshold int) Visibility {
	if stock <= threshold {
		return Hidden
	}
	return Visible
}

// Result is the outcome of Run.
type Result struct {
	Rows   []ProductRow
	Report *Report
	Index  *SupplierIndex
}

// Run builds the supplier index, reconciles the local rows and fills the derived report views.
func Run(local []ProductRow, supplier []SupplierRow, opts Options) *Result {
	index := BuildIndex(supplier)
	rows, report := Reconcile(local, index, opts)

	report.UnmatchedByCode = UnmatchedByCode(rows, index, opts)
	report.DuplicateCodes = DuplicateCodes(rows, opts.Ignore)
	report.SupplierCollisions = index.Collisions

	return &Result{Rows: rows, Report: report, Index: index}
}
