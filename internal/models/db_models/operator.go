package db_models

// Operator is a dashboard account. Each operator owns its bots and, through
// them, everything else.
type Operator struct {
	BaseModel
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	Name         string

	Bots []Bot `gorm:"foreignKey:OperatorID"`
}
