package service

import "errors"

var (
	ErrWalletNotFound        = errors.New("wallet not found")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrWalletNameRequired    = errors.New("wallet name can't be empty")
	ErrWalletHasTransactions = errors.New("wallet still has transactions")
	ErrInvalidAmount         = errors.New("amount must be a positive number")
	ErrInvalidType           = errors.New("transaction type must be 'income' or 'expense'")
	ErrRemoteNotConfigured   = errors.New("remote sync is not configured")
)
