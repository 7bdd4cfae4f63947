// Package api defines the wire messages of the split ledger RPC services.
//
// Messages are plain structs carried by Connect with the JSON or CBOR codec.
// Amounts are integers in the smallest currency unit.
package api

const (
	LedgerServiceName = "splitledger.v1.LedgerService"
	AuthServiceName   = "splitledger.v1.AuthService"
)

// Procedure paths, relative to the server root.
const (
	LedgerCreateBillProcedure  = "/" + LedgerServiceName + "/CreateBill"
	LedgerPayBillProcedure     = "/" + LedgerServiceName + "/PayBill"
	LedgerGetBillProcedure     = "/" + LedgerServiceName + "/GetBill"
	LedgerListBillsProcedure   = "/" + LedgerServiceName + "/ListBills"
	LedgerGetBalancesProcedure = "/" + LedgerServiceName + "/GetBalances"

	AuthRegisterProcedure = "/" + AuthServiceName + "/Register"
	AuthLoginProcedure    = "/" + AuthServiceName + "/Login"
)

// ErrorKindHeader names the ledger error kind on failed calls, e.g. "AlreadyPaid".
const ErrorKindHeader = "Ledger-Error"

type CreateBillRequest struct {
	Creator      string   `json:"creator" cbor:"1,keyasint"`
	Total        int64    `json:"total" cbor:"2,keyasint"`
	Participants []string `json:"participants" cbor:"3,keyasint"`
}

type CreateBillResponse struct {
	BillID uint32 `json:"bill_id" cbor:"1,keyasint"`
	Share  int64  `json:"share" cbor:"2,keyasint"`
}

type PayBillRequest struct {
	BillID uint32 `json:"bill_id" cbor:"1,keyasint"`
	Payer  string `json:"payer" cbor:"2,keyasint"`
}

type PayBillResponse struct {
	// Settled reports whether this payment settled the bill.
	Settled bool `json:"settled" cbor:"1,keyasint"`
}

type GetBillRequest struct {
	BillID uint32 `json:"bill_id" cbor:"1,keyasint"`
}

type GetBillResponse struct {
	Bill *Bill `json:"bill" cbor:"1,keyasint"`
}

type ListBillsRequest struct {
	// After is an exclusive lower bound on bill ids; 0 starts at the first bill.
	After uint32 `json:"after,omitempty" cbor:"1,keyasint,omitempty"`
	Limit int32  `json:"limit,omitempty" cbor:"2,keyasint,omitempty"`
}

type ListBillsResponse struct {
	Bills []*Bill `json:"bills" cbor:"1,keyasint"`
	// NextAfter is the After value for the next page, 0 when there are no more bills.
	NextAfter uint32 `json:"next_after,omitempty" cbor:"2,keyasint,omitempty"`
}

// Bill is the public view of a bill.
type Bill struct {
	BillID       uint32          `json:"bill_id" cbor:"1,keyasint"`
	Creator      string          `json:"creator" cbor:"2,keyasint"`
	Total        int64           `json:"total" cbor:"3,keyasint"`
	Share        int64           `json:"share" cbor:"4,keyasint"`
	Participants []string        `json:"participants" cbor:"5,keyasint"`
	Paid         map[string]bool `json:"paid" cbor:"6,keyasint"`
	Settled      bool            `json:"settled" cbor:"7,keyasint"`
	Status       string          `json:"status" cbor:"8,keyasint"`
	Remainder    int64           `json:"remainder" cbor:"9,keyasint"`
}

type GetBalancesRequest struct{}

type GetBalancesResponse struct {
	Balances []*MemberBalance `json:"balances" cbor:"1,keyasint"`
	Debts    []*Debt          `json:"debts" cbor:"2,keyasint"`
}

// MemberBalance sums the outstanding shares of one principal across all bills.
// A positive NetBalance means the principal is owed money.
type MemberBalance struct {
	Principal  string `json:"principal" cbor:"1,keyasint"`
	TotalPaid  int64  `json:"total_paid" cbor:"2,keyasint"`
	TotalOwed  int64  `json:"total_owed" cbor:"3,keyasint"`
	Receivable int64  `json:"receivable" cbor:"4,keyasint"`
	NetBalance int64  `json:"net_balance" cbor:"5,keyasint"`
}

// Debt is one transfer in the simplified set that clears all balances.
type Debt struct {
	From   string `json:"from" cbor:"1,keyasint"`
	To     string `json:"to" cbor:"2,keyasint"`
	Amount int64  `json:"amount" cbor:"3,keyasint"`
}

type RegisterRequest struct {
	Email       string `json:"email" cbor:"1,keyasint"`
	DisplayName string `json:"display_name" cbor:"2,keyasint"`
	Password    string `json:"password" cbor:"3,keyasint"`
}

type LoginRequest struct {
	Email    string `json:"email" cbor:"1,keyasint"`
	Password string `json:"password" cbor:"2,keyasint"`
}

// Session is returned by Register and Login.
type Session struct {
	Principal   string `json:"principal" cbor:"1,keyasint"`
	Email       string `json:"email" cbor:"2,keyasint"`
	DisplayName string `json:"display_name" cbor:"3,keyasint"`
	CreatedAt   int64  `json:"created_at" cbor:"4,keyasint"`
	Token       string `json:"token" cbor:"5,keyasint"`
}
