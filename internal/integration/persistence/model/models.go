package model

// All returns every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&RefreshTokenModel{},
		&PasswordResetTokenModel{},
		&CategoryModel{},
		&TransactionModel{},
		&SettingModel{},
		&AnalyticsSummaryModel{},
		&BankAliasModel{},
		&EmailQueueModel{},
	}
}
