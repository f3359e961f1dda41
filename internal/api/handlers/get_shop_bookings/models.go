package get_shop_bookings

import (
	"fmt"
	"time"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(shopID int64, startDateStr, endDateStr, classStr string) (*models.GetShopBookingsRequest, error) {
	req := &models.GetShopBookingsRequest{
		ShopID: shopID,
	}

	// Парсим startDate если указана
	if startDateStr != "" {
		date, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate: %w", err)
		}
		req.StartDate = &date
	}

	// Парсим endDate если указана
	if endDateStr != "" {
		date, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate: %w", err)
		}
		req.EndDate = &date
	}

	if classStr != "" {
		req.Class = &classStr
	}

	return req, nil
}
