package calculator

import (
	"cmp"
	"slices"
)

// BillForBalance represents a bill with the minimal information needed for balance calculations.
// The creator is treated as having fronted the total, so every unpaid share
// of another participant is owed to the creator.
type BillForBalance struct {
	Creator string
	Share   int64
	Paid    map[string]bool // participant -> paid
}

// MemberBalance represents the balance information for one principal.
type MemberBalance struct {
	Member     string
	TotalPaid  int64 // Shares this member has marked paid
	TotalOwed  int64 // Unpaid shares of bills created by someone else
	Receivable int64 // Unpaid shares other participants owe this member
	NetBalance int64 // Receivable - TotalOwed
}

// DebtEdge represents a debt from one person to another.
type DebtEdge struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount int64
}

// CalculateBalances aggregates outstanding shares across bills.
//
// Algorithm:
//   - a paid share counts towards the payer's TotalPaid
//   - an unpaid share of a participant other than the creator is owed to the creator
//   - a creator's own unpaid share is owed to nobody
//   - net_balance = receivable - total_owed
//   - debts are simplified by greedily matching the largest debtor with the largest creditor
//
// Members and edges are returned in a deterministic order.
func CalculateBalances(bills []BillForBalance) ([]MemberBalance, []DebtEdge) {
	balances := make(map[string]*MemberBalance)
	get := func(member string) *MemberBalance {
		b, ok := balances[member]
		if !ok {
			b = &MemberBalance{Member: member}
			balances[member] = b
		}
		return b
	}

	for _, bill := range bills {
		for participant, paid := range bill.Paid {
			switch {
			case paid:
				get(participant).TotalPaid += bill.Share
			case participant != bill.Creator:
				get(participant).TotalOwed += bill.Share
				get(bill.Creator).Receivable += bill.Share
			default:
				get(participant)
			}
		}
	}

	members := make([]MemberBalance, 0, len(balances))
	for _, b := range balances {
		b.NetBalance = b.Receivable - b.TotalOwed
		members = append(members, *b)
	}
	slices.SortFunc(members, func(a, b MemberBalance) int {
		return cmp.Compare(a.Member, b.Member)
	})

	return members, simplifyDebts(members)
}

// simplifyDebts turns net balances into the transfers that settle them.
func simplifyDebts(members []MemberBalance) []DebtEdge {
	type entry struct {
		member string
		amount int64
	}
	var creditors, debtors []entry
	for _, m := range members {
		if m.NetBalance > 0 {
			creditors = append(creditors, entry{m.Member, m.NetBalance})
		} else if m.NetBalance < 0 {
			debtors = append(debtors, entry{m.Member, -m.NetBalance})
		}
	}
	largestFirst := func(a, b entry) int {
		if c := cmp.Compare(b.amount, a.amount); c != 0 {
			return c
		}
		return cmp.Compare(a.member, b.member)
	}
	slices.SortFunc(creditors, largestFirst)
	slices.SortFunc(debtors, largestFirst)

	var edges []DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := min(debtors[i].amount, creditors[j].amount)
		edges = append(edges, DebtEdge{
			From:   debtors[i].member,
			To:     creditors[j].member,
			Amount: amount,
		})

		debtors[i].amount -= amount
		creditors[j].amount -= amount
		if debtors[i].amount == 0 {
			i++
		}
		if creditors[j].amount == 0 {
			j++
		}
	}
	return edges
}
