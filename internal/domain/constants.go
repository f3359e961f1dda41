package domain

import "github.com/shopspring/decimal"

// Бизнес-ограничения
const (
	MaxAddressLength     = 120
	MaxNoteLength        = 500
	MaxShopNameLength    = 120
	MaxServiceNameLength = 80
	MoneyScale           = 2
)

// Форматы
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Верхние границы денежных сумм и веса по размерности колонок NUMERIC(12,2) и NUMERIC(10,2)
var (
	MaxMoneyAmount = decimal.RequireFromString("9999999999.99")
	MaxWeight      = decimal.RequireFromString("99999999.99")
)
