// Package entity defines the core business entities for the domain layer.
package entity

import "github.com/shopspring/decimal"

// UserBalance summarizes a user's position across all splits and settlements.
// It is derived on every read and never persisted: persisting it would create
// a second source of truth that could drift from the ledger.
type UserBalance struct {
	// TotalOwed is what this user still owes others.
	TotalOwed decimal.Decimal
	// TotalOwing is what others still owe this user.
	TotalOwing decimal.Decimal
	// NetBalance is TotalOwing minus TotalOwed.
	NetBalance decimal.Decimal
}

// ZeroBalance returns a balance with all fields at zero.
func ZeroBalance() UserBalance {
	return UserBalance{
		TotalOwed:  decimal.Zero,
		TotalOwing: decimal.Zero,
		NetBalance: decimal.Zero,
	}
}
