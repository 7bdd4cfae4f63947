package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/pkg/api"
)

const maxListLimit = 500

// LedgerService exposes the bill ledger over Connect.
type LedgerService struct {
	ledger *ledger.BillLedger
}

// NewLedgerService creates a new LedgerService over the given ledger.
func NewLedgerService(l *ledger.BillLedger) *LedgerService {
	return &LedgerService{ledger: l}
}

// Handler builds the HTTP handler for every LedgerService procedure.
// writeOpts apply to CreateBill and PayBill, readOpts to the read-only procedures.
func (s *LedgerService) Handler(writeOpts, readOpts []connect.HandlerOption) (string, http.Handler) {
	write := append([]connect.HandlerOption{codecOptions()}, writeOpts...)
	read := append([]connect.HandlerOption{codecOptions()}, readOpts...)

	mux := http.NewServeMux()
	mux.Handle(api.LedgerCreateBillProcedure, connect.NewUnaryHandler(api.LedgerCreateBillProcedure, s.CreateBill, write...))
	mux.Handle(api.LedgerPayBillProcedure, connect.NewUnaryHandler(api.LedgerPayBillProcedure, s.PayBill, write...))
	mux.Handle(api.LedgerGetBillProcedure, connect.NewUnaryHandler(api.LedgerGetBillProcedure, s.GetBill, read...))
	mux.Handle(api.LedgerListBillsProcedure, connect.NewUnaryHandler(api.LedgerListBillsProcedure, s.ListBills, read...))
	mux.Handle(api.LedgerGetBalancesProcedure, connect.NewUnaryHandler(api.LedgerGetBalancesProcedure, s.GetBalances, read...))
	return "/" + api.LedgerServiceName + "/", mux
}

func toPrincipals(ids []string) []models.Principal {
	if ids == nil {
		return nil
	}
	ps := make([]models.Principal, len(ids))
	for i, id := range ids {
		ps[i] = models.Principal(id)
	}
	return ps
}

func toAPIBill(id models.BillID, bill *models.Bill) *api.Bill {
	participants := make([]string, len(bill.Participants))
	paid := make(map[string]bool, len(bill.Paid))
	for i, p := range bill.Participants {
		participants[i] = string(p)
		paid[string(p)] = bill.Paid[p]
	}
	return &api.Bill{
		BillID:       uint32(id),
		Creator:      string(bill.Creator),
		Total:        bill.Total,
		Share:        bill.Share,
		Participants: participants,
		Paid:         paid,
		Settled:      bill.Settled,
		Status:       string(bill.Status()),
		Remainder:    bill.Remainder(),
	}
}

// CreateBill registers a new bill. The caller must be authenticated as the creator.
func (s *LedgerService) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	slog.Debug("CreateBill request received",
		"creator", req.Msg.Creator,
		"total", req.Msg.Total,
		"participants_count", len(req.Msg.Participants),
	)

	id, err := s.ledger.CreateBill(ctx, models.Principal(req.Msg.Creator), req.Msg.Total, toPrincipals(req.Msg.Participants))
	if err != nil {
		return nil, ledgerError(err)
	}

	bill, err := s.ledger.GetBill(ctx, id)
	if err != nil {
		slog.Error("CreateBill: failed to read back bill", "bill_id", id, "error", err)
		return nil, ledgerError(err)
	}

	return connect.NewResponse(&api.CreateBillResponse{
		BillID: uint32(id),
		Share:  bill.Share,
	}), nil
}

// PayBill records the payer's share. The caller must be authenticated as the payer.
func (s *LedgerService) PayBill(ctx context.Context, req *connect.Request[api.PayBillRequest]) (*connect.Response[api.PayBillResponse], error) {
	settled, err := s.ledger.PayBill(ctx, models.BillID(req.Msg.BillID), models.Principal(req.Msg.Payer))
	if err != nil {
		return nil, ledgerError(err)
	}
	return connect.NewResponse(&api.PayBillResponse{Settled: settled}), nil
}

// GetBill returns a bill. No authentication is required.
func (s *LedgerService) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	id := models.BillID(req.Msg.BillID)
	bill, err := s.ledger.GetBill(ctx, id)
	if err != nil {
		if !errors.Is(err, ledger.ErrBillNotFound) {
			slog.Error("GetBill failed", "bill_id", id, "error", err)
		}
		return nil, ledgerError(err)
	}
	return connect.NewResponse(&api.GetBillResponse{Bill: toAPIBill(id, bill)}), nil
}

// ListBills pages through all bills in id order. No authentication is required.
func (s *LedgerService) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	limit := int(req.Msg.Limit)
	if limit < 0 || limit > maxListLimit {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("limit must be between 0 and %d", maxListLimit))
	}

	entries, err := s.ledger.ListBills(ctx, models.BillID(req.Msg.After), limit)
	if err != nil {
		slog.Error("ListBills failed", "after", req.Msg.After, "error", err)
		return nil, ledgerError(err)
	}

	resp := &api.ListBillsResponse{Bills: make([]*api.Bill, len(entries))}
	for i, e := range entries {
		resp.Bills[i] = toAPIBill(e.ID, e.Bill)
	}

	if len(entries) > 0 {
		last, err := s.ledger.LastBillID(ctx)
		if err != nil {
			return nil, ledgerError(err)
		}
		if tail := entries[len(entries)-1].ID; tail < last {
			resp.NextAfter = uint32(tail)
		}
	}
	return connect.NewResponse(resp), nil
}

// GetBalances reports what every principal owes and is owed across all bills.
// No authentication is required.
func (s *LedgerService) GetBalances(ctx context.Context, _ *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	members, debts, err := s.ledger.Balances(ctx)
	if err != nil {
		slog.Error("GetBalances failed", "error", err)
		return nil, ledgerError(err)
	}

	resp := &api.GetBalancesResponse{
		Balances: make([]*api.MemberBalance, len(members)),
		Debts:    make([]*api.Debt, len(debts)),
	}
	for i, m := range members {
		resp.Balances[i] = &api.MemberBalance{
			Principal:  m.Member,
			TotalPaid:  m.TotalPaid,
			TotalOwed:  m.TotalOwed,
			Receivable: m.Receivable,
			NetBalance: m.NetBalance,
		}
	}
	for i, d := range debts {
		resp.Debts[i] = &api.Debt{From: d.From, To: d.To, Amount: d.Amount}
	}
	return connect.NewResponse(resp), nil
}
