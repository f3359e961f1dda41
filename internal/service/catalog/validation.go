package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
)

// validateShopName проверяет и нормализует название прачечной
func validateShopName(name string) (string, error) {
	name = domain.CollapseSpaces(name)
	if name == "" {
		return "", fmt.Errorf("%w: shop name is required", ErrInvalidInput)
	}
	if domain.RuneLen(name) > domain.MaxShopNameLength {
		return "", fmt.Errorf("%w: shop name exceeds %d characters", ErrInvalidInput, domain.MaxShopNameLength)
	}
	return name, nil
}

// validateServiceName проверяет и нормализует название услуги
func validateServiceName(name string) (string, error) {
	name = domain.NormalizeServiceName(name)
	if name == "" {
		return "", fmt.Errorf("%w: service name is required", ErrInvalidInput)
	}
	if domain.RuneLen(name) > domain.MaxServiceNameLength {
		return "", fmt.Errorf("%w: service name exceeds %d characters", ErrInvalidInput, domain.MaxServiceNameLength)
	}
	return name, nil
}

// validatePrice проверяет цену: не отрицательная, не больше MaxMoneyAmount, не более двух знаков после запятой
func validatePrice(price *decimal.Decimal) error {
	if price == nil {
		return nil
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if price.GreaterThan(domain.MaxMoneyAmount) {
		return fmt.Errorf("%w: price must not exceed %s", ErrInvalidInput, domain.MaxMoneyAmount)
	}
	if !price.Equal(price.Round(domain.MoneyScale)) {
		return fmt.Errorf("%w: price must have at most %d decimals", ErrInvalidInput, domain.MoneyScale)
	}
	return nil
}

func nullPrice(price *decimal.Decimal) decimal.NullDecimal {
	if price == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*price)
}
