package service

import (
	"context"
	"fmt"
	"strings"

	"belutin-web/internal/apperrors"
	"belutin-web/internal/calc"
	"belutin-web/internal/coa"
	"belutin-web/internal/metrics"
	"belutin-web/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// AdjustmentTemplate is one of the fixed period-end adjustments.
type AdjustmentTemplate struct {
	No     int
	Key    string
	Label  string
	Debit  string
	Credit string
	// Divisor turns an acquisition cost into one month of straight-line
	// depreciation; zero means the input is posted as is.
	Divisor int64
	input   func(models.AdjustmentRequest) string
}

var AdjustmentTemplates = []AdjustmentTemplate{
	{1, "penyusutan_bangunan", "Penyusutan Bangunan (8 tahun)", coa.DepreciationExpense, coa.AccumDeprBuilding, 8 * 12,
		func(r models.AdjustmentRequest) string { return r.Building }},
	{2, "penyusutan_kendaraan", "Penyusutan Kendaraan (4 tahun)", coa.DepreciationExpense, coa.AccumDeprVehicle, 4 * 12,
		func(r models.AdjustmentRequest) string { return r.Vehicle }},
	{3, "penyusutan_peralatan", "Penyusutan Peralatan (4 tahun)", coa.DepreciationExpense, coa.AccumDeprEquipment, 4 * 12,
		func(r models.AdjustmentRequest) string { return r.Equipment }},
	{4, "hpp_standar", "HPP Belut Standar", coa.COGSEelStandard, coa.InventoryEelStandard, 0,
		func(r models.AdjustmentRequest) string { return r.HPPStandar }},
	{5, "hpp_super", "HPP Belut Super", coa.COGSEelSuper, coa.InventoryEelSuper, 0,
		func(r models.AdjustmentRequest) string { return r.HPPSuper }},
	{6, "pakan_standar", "Beban Pakan Belut Standar", coa.FeedExpenseStandard, coa.PurchaseFeedStandard, 0,
		func(r models.AdjustmentRequest) string { return r.PakanStandar }},
	{7, "pakan_super", "Beban Pakan Belut Super", coa.FeedExpenseSuper, coa.PurchaseFeedSuper, 0,
		func(r models.AdjustmentRequest) string { return r.PakanSuper }},
}

// adjustmentFields names the form input each template reads.
var adjustmentFields = map[string]string{
	"penyusutan_bangunan":  "harga_bangunan",
	"penyusutan_kendaraan": "harga_kendaraan",
	"penyusutan_peralatan": "harga_peralatan",
	"hpp_standar":          "hpp_standar",
	"hpp_super":            "hpp_super",
	"pakan_standar":        "pakan_standar",
	"pakan_super":          "pakan_super",
}

func (t AdjustmentTemplate) Field() string {
	return adjustmentFields[t.Key]
}

// Amount evaluates the template input. Depreciation templates divide the cost by
// the useful life in months. The result is rounded to whole sen.
func (t AdjustmentTemplate) Amount(expr string) (decimal.Decimal, error) {
	v, err := calc.Eval(expr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", t.Label, err)
	}
	if t.Divisor > 0 {
		v = v.Div(decimal.NewFromInt(t.Divisor))
	}
	return v.Round(2), nil
}

type AdjustmentService struct {
	adjustments AdjustmentStore
	chart       *coa.Chart
	logger      *logrus.Logger
}

func NewAdjustmentService(adjustments AdjustmentStore, chart *coa.Chart, logger *logrus.Logger) *AdjustmentService {
	if chart == nil {
		chart = coa.Default()
	}
	return &AdjustmentService{adjustments: adjustments, chart: chart, logger: logger}
}

// Build evaluates the request into adjustment rows without writing them. A template
// yields a debit row and an indented credit row only when its amount is positive.
func (s *AdjustmentService) Build(owner string, req models.AdjustmentRequest) ([]models.AdjustmentEntry, error) {
	if err := validateDate(req.Date); err != nil {
		return nil, err
	}
	selected := AdjustmentTemplates
	if req.Type != "" {
		selected = nil
		for _, t := range AdjustmentTemplates {
			if t.Key == req.Type {
				selected = append(selected, t)
			}
		}
		if len(selected) == 0 {
			return nil, apperrors.Validation(fmt.Sprintf("Jenis penyesuaian tidak dikenal: %s", req.Type))
		}
	}

	var rows []models.AdjustmentEntry
	for _, t := range selected {
		expr := strings.TrimSpace(t.input(req))
		if expr == "" {
			continue
		}
		amount, err := t.Amount(expr)
		if err != nil {
			return nil, err
		}
		if !amount.IsPositive() {
			continue
		}
		rows = append(rows,
			models.AdjustmentEntry{
				No: t.No, Date: req.Date, Description: s.chart.Name(t.Debit), Ref: t.Debit,
				Debit: amount, Credit: decimal.Zero, Owner: owner,
			},
			models.AdjustmentEntry{
				No: t.No, Date: req.Date, Description: s.chart.Name(t.Credit), Ref: t.Credit,
				Debit: decimal.Zero, Credit: amount, IsIndent: true, Owner: owner,
			},
		)
	}
	if len(rows) == 0 {
		return nil, apperrors.Validation("Tidak ada entri yang dibuat. Pastikan nilai > 0")
	}
	return rows, nil
}

// Apply builds and stores the rows one at a time. On a store error the rows
// written so far stay.
func (s *AdjustmentService) Apply(ctx context.Context, owner string, req models.AdjustmentRequest) ([]models.AdjustmentEntry, error) {
	rows, err := s.Build(owner, req)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if err := s.adjustments.Create(ctx, &rows[i]); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"owner":   owner,
				"no":      rows[i].No,
				"written": i,
			}).Error("Failed to store adjustment row")
			return rows[:i], err
		}
		if !rows[i].IsIndent {
			metrics.AdjustmentRows.WithLabelValues(fmt.Sprint(rows[i].No)).Inc()
		}
	}
	s.logger.WithFields(logrus.Fields{"owner": owner, "rows": len(rows)}).Info("Adjustments recorded")
	return rows, nil
}

func (s *AdjustmentService) View(ctx context.Context, owner string) (*models.AdjustmentView, error) {
	rows, err := s.adjustments.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	view := &models.AdjustmentView{Entries: rows, TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for _, r := range rows {
		view.TotalDebit = view.TotalDebit.Add(r.Debit)
		view.TotalCredit = view.TotalCredit.Add(r.Credit)
	}
	return view, nil
}

func (s *AdjustmentService) Delete(ctx context.Context, owner string, id int64) error {
	if err := s.adjustments.Delete(ctx, id, owner); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{"owner": owner, "id": id}).Info("Adjustment deleted")
	return nil
}
