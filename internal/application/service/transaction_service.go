package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/till-api/internal/domain/entity"
	"github.com/sangkips/till-api/internal/domain/enum"
	"github.com/sangkips/till-api/internal/domain/repository"
	"github.com/sangkips/till-api/internal/navigation"
	"github.com/sangkips/till-api/internal/reporting"
	"github.com/sangkips/till-api/internal/sale"
	"github.com/sangkips/till-api/pkg/apperror"
	"github.com/sangkips/till-api/pkg/pagination"
	"github.com/sangkips/till-api/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const dashboardDocumentLimit = 50

// ErrTooManyTransactions is returned by FetchAll when more transactions
// match than the caller allows
var ErrTooManyTransactions = errors.New("too many transactions match")

// TransactionService stores committed till documents and reads them back
type TransactionService struct {
	txnRepo repository.TransactionRepository
	log     logrus.FieldLogger
	now     func() time.Time
}

// NewTransactionService creates a new transaction service
func NewTransactionService(txnRepo repository.TransactionRepository, log logrus.FieldLogger) *TransactionService {
	return &TransactionService{txnRepo: txnRepo, log: log, now: time.Now}
}

// FetchTransactions returns one page of transactions matching filter
func (s *TransactionService) FetchTransactions(ctx context.Context, filter *repository.TransactionFilter) (*pagination.PaginatedResult[entity.Transaction], error) {
	filter.Pagination.Validate()
	txns, total, err := s.txnRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	pag := pagination.NewPagination(filter.Pagination.Page, filter.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(txns, pag), nil
}

// FetchAll walks every page of filter. With limit > 0 it never returns a
// partial set: more matches than limit is ErrTooManyTransactions.
func (s *TransactionService) FetchAll(ctx context.Context, filter repository.TransactionFilter, limit int) ([]entity.Transaction, error) {
	filter.Pagination = pagination.PaginationParams{Page: 1, PerPage: pagination.MaxPerPage}
	out := make([]entity.Transaction, 0)

	for {
		txns, total, err := s.txnRepo.List(ctx, &filter)
		if err != nil {
			return nil, fmt.Errorf("list transactions: %w", err)
		}
		if limit > 0 && (total > int64(limit) || len(out)+len(txns) > limit) {
			s.log.WithFields(logrus.Fields{"limit": limit, "total": total}).Warn("transaction fetch over limit")
			return nil, fmt.Errorf("%w: %d match, limit is %d", ErrTooManyTransactions, total, limit)
		}
		out = append(out, txns...)
		if len(txns) == 0 || int64(len(out)) >= total {
			return out, nil
		}
		filter.Pagination = filter.Pagination.Next()
	}
}

// FetchDashboardDocuments lists the orders or quotations of a customer,
// newest first
func (s *TransactionService) FetchDashboardDocuments(ctx context.Context, mode enum.DashboardMode, customerID uuid.UUID) ([]navigation.DocumentSummary, error) {
	filter := repository.TransactionFilter{
		Kinds:      []enum.SaleKind{mode.SaleKind()},
		CustomerID: &customerID,
	}
	txns, err := s.FetchAll(ctx, filter, 0)
	if err != nil {
		return nil, err
	}

	docs := make([]navigation.DocumentSummary, 0, dashboardDocumentLimit)
	for i := len(txns) - 1; i >= 0 && len(docs) < dashboardDocumentLimit; i-- {
		t := txns[i]
		docs = append(docs, navigation.DocumentSummary{
			ID:         t.ID,
			DocumentNo: t.DocumentNo,
			Kind:       t.Kind,
			Total:      t.Total,
			OccurredAt: t.OccurredAt,
		})
	}
	return docs, nil
}

// GetTransaction returns a transaction with its lines
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	txn, err := s.txnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return txn, nil
}

// CommitInput carries a finished draft and where it was rung up
type CommitInput struct {
	Draft    *sale.Draft
	Settings sale.Settings
	User     *navigation.Identity
}

// Commit stores a draft as a transaction. Returns are stored with negative
// totals and item counts so sums over a period net them off.
func (s *TransactionService) Commit(ctx context.Context, input *CommitInput) (*entity.Transaction, error) {
	d := input.Draft
	if d == nil || d.IsEmpty() {
		return nil, apperror.NewBadRequestError("Cannot complete a sale without lines")
	}

	prefix := utils.DocumentPrefix(d.Kind.String())
	till := input.Settings.DefaultTillNumber
	seq, err := s.txnRepo.NextSequence(ctx, utils.DocumentSeries(prefix, till))
	if err != nil {
		return nil, fmt.Errorf("next document number: %w", err)
	}

	sign := decimal.NewFromInt(1)
	if d.Kind.IsReturn() {
		sign = decimal.NewFromInt(-1)
	}

	txn := &entity.Transaction{
		DocumentNo:         utils.FormatDocumentNo(prefix, till, seq),
		Kind:               d.Kind,
		WarehouseCode:      d.Header.WarehouseCode,
		TillNumber:         till,
		Reference:          d.Header.Reference,
		OriginalInvoiceRef: d.Header.OriginalInvoiceRef,
		SalesPersonCode:    d.Header.SalesRepCode,
		Total:              d.Total().Mul(sign),
		ItemCount:          d.ItemCount().Mul(sign),
		OccurredAt:         s.now(),
	}
	if d.Customer != nil {
		txn.CustomerID = &d.Customer.ID
		txn.CustomerName = d.Customer.Name
		txn.CustomerAccount = d.Customer.AccountNumber
	} else {
		txn.CustomerName = "Walk-in"
	}
	if u := input.User; u != nil {
		txn.UserID = &u.UserID
		if txn.SalesPersonCode == "" {
			txn.SalesPersonCode = u.StaffCode
		}
		if txn.SalesPersonCode == u.StaffCode {
			txn.SalesPersonName = u.DisplayName
		}
	}

	for i, l := range d.Lines {
		txn.Lines = append(txn.Lines, entity.TransactionLine{
			LineNo:         i + 1,
			ProductCode:    l.ProductID,
			Description:    l.Description,
			Quantity:       l.Quantity.Mul(sign),
			UnitPrice:      l.UnitPrice,
			DiscountAmount: l.DiscountAmount,
			DiscountType:   l.DiscountType,
			Value:          l.Net().Mul(sign),
		})
	}

	if err := s.txnRepo.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("store transaction: %w", err)
	}
	s.log.WithFields(logrus.Fields{
		"document_no": txn.DocumentNo,
		"kind":        txn.Kind.String(),
		"total":       txn.Total.String(),
	}).Info("transaction committed")
	return txn, nil
}

// ImportResult reports what an import stored
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Reasons  []string `json:"reasons,omitempty"`
}

// Import stores normalized records. Records whose document number already
// exists, in the store or earlier in the same payload, are skipped.
func (s *TransactionService) Import(ctx context.Context, records []reporting.Record, userID uuid.UUID) (*ImportResult, error) {
	res := &ImportResult{}
	seen := make(map[string]bool)
	batch := make([]entity.Transaction, 0, len(records))

	for _, r := range records {
		if r.DocumentNo == "" {
			r.DocumentNo = utils.GenerateReferenceNo("IMP")
		}
		if seen[r.DocumentNo] {
			res.skip(r.DocumentNo + ": duplicate in payload")
			continue
		}
		seen[r.DocumentNo] = true

		existing, err := s.txnRepo.GetByDocumentNo(ctx, r.DocumentNo)
		if err != nil {
			return nil, fmt.Errorf("check document %s: %w", r.DocumentNo, err)
		}
		if existing != nil {
			res.skip(r.DocumentNo + ": already stored")
			continue
		}

		txn, err := transactionFromRecord(r, userID, s.now())
		if err != nil {
			res.skip(r.DocumentNo + ": " + err.Error())
			continue
		}
		batch = append(batch, txn)
	}

	if err := s.txnRepo.CreateBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("store imported transactions: %w", err)
	}
	res.Imported = len(batch)
	s.log.WithFields(logrus.Fields{"imported": res.Imported, "skipped": res.Skipped}).Info("transactions imported")
	return res, nil
}

func (r *ImportResult) skip(reason string) {
	r.Skipped++
	r.Reasons = append(r.Reasons, reason)
}

func transactionFromRecord(r reporting.Record, userID uuid.UUID, now time.Time) (entity.Transaction, error) {
	kind := enum.SaleKindCashSale
	if r.Kind != "" {
		k, err := enum.ParseSaleKind(r.Kind)
		if err != nil {
			return entity.Transaction{}, err
		}
		kind = k
	}
	occurred := r.Timestamp
	if occurred.IsZero() {
		occurred = now
	}

	txn := entity.Transaction{
		DocumentNo:      r.DocumentNo,
		Kind:            kind,
		CustomerName:    r.CustomerName,
		CustomerAccount: r.CustomerAccount,
		SalesPersonCode: r.SalesPersonID,
		SalesPersonName: r.SalesPersonName,
		PickerCode:      r.PickerID,
		PickerName:      r.PickerName,
		Total:           r.Total,
		ItemCount:       r.ItemCount,
		OccurredAt:      occurred,
		UserID:          &userID,
	}
	if id, err := uuid.Parse(r.CustomerID); err == nil {
		txn.CustomerID = &id
	} else {
		txn.CustomerCode = r.CustomerID
	}
	for i, l := range r.Lines {
		qty := l.Quantity
		price := decimal.Zero
		if !qty.IsZero() {
			price = l.Value.DivRound(qty, 2)
		}
		txn.Lines = append(txn.Lines, entity.TransactionLine{
			LineNo:      i + 1,
			ProductCode: l.ProductCode,
			Description: l.Description,
			Quantity:    qty,
			UnitPrice:   price.Abs(),
			Value:       l.Value,
		})
	}
	return txn, nil
}
