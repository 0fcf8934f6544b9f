package response_models

type OperatorSession struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type StatisticsReport struct {
	TotalBots            int64   `json:"total_bots"`
	ActiveSubscriptions  int64   `json:"active_subscriptions"`
	ExpiredSubscriptions int64   `json:"expired_subscriptions"`
	PendingTransactions  int64   `json:"pending_transactions"`
	CompletedPayments    int64   `json:"completed_payments"`
	TotalRevenue         float64 `json:"total_revenue"`
}
