// Package dto defines data transfer objects for API requests and responses.
package dto

import "github.com/splitledger/backend/internal/domain/entity"

// BalanceResponse represents a user's aggregated balance in API responses.
type BalanceResponse struct {
	TotalOwed  string `json:"total_owed"`
	TotalOwing string `json:"total_owing"`
	NetBalance string `json:"net_balance"`
}

// ToBalanceResponse converts a UserBalance entity to a BalanceResponse DTO.
func ToBalanceResponse(balance entity.UserBalance) BalanceResponse {
	return BalanceResponse{
		TotalOwed:  balance.TotalOwed.StringFixed(2),
		TotalOwing: balance.TotalOwing.StringFixed(2),
		NetBalance: balance.NetBalance.StringFixed(2),
	}
}
