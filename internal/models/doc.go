// Package models defines the core domain models for the split ledger.
//
// # Models
//
//   - Bill: one expense split evenly among a fixed set of participants
//   - BillID: sequential bill identifier, never reused
//   - Principal: the identity a caller acts as
//   - Account: a password login mapped to a Principal
//
// # Bill lifecycle
//
// A bill starts open with every participant unpaid. Each participant pays
// their share once. The payment that completes the last outstanding share
// settles the bill, and a settled bill accepts no further payments.
//
// # Design Principles
//
//  1. Models carry no storage or transport concerns beyond struct tags
//  2. Stored values are copied on the way in and out (see Bill.Clone)
//  3. The even share is computed once at creation and never recomputed
package models
