package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sangkips/till-api/internal/domain/enum"
	"github.com/sangkips/till-api/internal/domain/repository"
	"github.com/sangkips/till-api/internal/reporting"
	"github.com/sangkips/till-api/pkg/apperror"
)

// statsKinds are the documents that move money; orders and quotations do not
var statsKinds = []enum.SaleKind{
	enum.SaleKindCashSale,
	enum.SaleKindAccountSale,
	enum.SaleKindTouchSale,
	enum.SaleKindCashReturn,
	enum.SaleKindAccountReturn,
}

// StatsService builds sales statistics over stored transactions
type StatsService struct {
	txns       *TransactionService
	topN       int
	maxRecords int
	now        func() time.Time
}

// NewStatsService creates a new stats service. topN is used when a request
// does not ask for a size; maxRecords caps one report.
func NewStatsService(txns *TransactionService, topN, maxRecords int) *StatsService {
	return &StatsService{txns: txns, topN: topN, maxRecords: maxRecords, now: time.Now}
}

// StatsInput selects the period and shape of a report. A zero To means
// now; a zero From means the start of To's day.
type StatsInput struct {
	From        time.Time
	To          time.Time
	View        reporting.View
	ItemRanking reporting.ItemRanking
	TopN        int
	TillNumber  string
}

// Build fetches the period's transactions and aggregates them
func (s *StatsService) Build(ctx context.Context, input *StatsInput) (*reporting.Report, error) {
	to := input.To
	if to.IsZero() {
		to = s.now()
	}
	from := input.From
	if from.IsZero() {
		from = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())
	}
	if !from.Before(to) {
		return nil, apperror.NewBadRequestError("from must be before to")
	}

	view := input.View
	if view == "" {
		view = reporting.ViewAll
	}
	topN := input.TopN
	if topN <= 0 {
		topN = s.topN
	}

	txns, err := s.txns.FetchAll(ctx, repository.TransactionFilter{
		StartDate:  &from,
		EndDate:    &to,
		Kinds:      statsKinds,
		TillNumber: input.TillNumber,
		WithLines:  view == reporting.ViewAll || view == reporting.ViewItems,
	}, s.maxRecords)
	if errors.Is(err, ErrTooManyTransactions) {
		return nil, apperror.NewValidationError([]apperror.FieldError{{
			Field:   "from",
			Message: fmt.Sprintf("the period has more than %d transactions; narrow the date range or pick a till", s.maxRecords),
		}})
	}
	if err != nil {
		return nil, err
	}

	return reporting.Build(reporting.FromTransactions(txns), reporting.Options{
		View:        view,
		ItemRanking: input.ItemRanking,
		TopN:        topN,
		From:        from,
		To:          to,
	}), nil
}

// Export writes the report for input as an XLSX workbook
func (s *StatsService) Export(ctx context.Context, w io.Writer, input *StatsInput) error {
	rep, err := s.Build(ctx, input)
	if err != nil {
		return err
	}
	return reporting.WriteXLSX(w, rep)
}
