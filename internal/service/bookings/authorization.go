package bookings

import "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"

// stagePerformers кто, кроме администратора, может отметить стадию
var stagePerformers = map[domain.Stage][]performer{
	domain.StageAcceptedByShop:       {performerShopOwner},
	domain.StagePickedUpFromClient:   {performerRider},
	domain.StageLaundryStarted:       {performerShopOwner},
	domain.StageReadyForDelivery:     {performerShopOwner},
	domain.StagePickedUpFromShop:     {performerRider},
	domain.StageOutForDelivery:       {performerRider},
	domain.StageReceivedByClient:     {performerRider},
	domain.StageTransactionCompleted: {performerClientOwner, performerShopOwner},
}

type performer int

const (
	performerShopOwner performer = iota
	performerRider
	performerClientOwner
)

// relation отношение вызывающего к конкретному бронированию
type relation struct {
	admin       bool
	shopOwner   bool
	rider       bool
	clientOwner bool
	// assignedRider вызывающий закреплен за бронированием как курьер забора или доставки
	assignedRider bool
	deliveryRider bool
}

func relate(actor domain.Actor, booking *domain.Booking, shop *domain.Shop) relation {
	rel := relation{
		admin:       actor.IsAdmin(),
		rider:       actor.Role == domain.RoleRider,
		clientOwner: actor.Role == domain.RoleClient && booking.ClientID == actor.AccountID,
	}
	if actor.Role == domain.RoleShop && shop != nil && shop.OwnerID == actor.AccountID {
		rel.shopOwner = true
	}
	if rel.rider {
		rel.deliveryRider = isRider(booking.DeliveryRiderID, actor.AccountID)
		rel.assignedRider = rel.deliveryRider || isRider(booking.PickupRiderID, actor.AccountID)
	}
	return rel
}

// canPerform сообщает, может ли вызывающий отметить стадию.
// На стадиях доставки после picked_up_from_shop действует только закрепленный курьер доставки.
func canPerform(rel relation, stage domain.Stage, booking *domain.Booking) bool {
	if rel.admin {
		return true
	}
	for _, p := range stagePerformers[stage] {
		switch p {
		case performerShopOwner:
			if rel.shopOwner {
				return true
			}
		case performerClientOwner:
			if rel.clientOwner {
				return true
			}
		case performerRider:
			if !rel.rider {
				continue
			}
			if stage > domain.StagePickedUpFromShop && booking.DeliveryRiderID != nil {
				return rel.deliveryRider
			}
			return true
		}
	}
	return false
}

func canView(rel relation) bool {
	return rel.admin || rel.shopOwner || rel.clientOwner || rel.assignedRider
}

func canCancel(rel relation) bool {
	return rel.admin || rel.shopOwner || rel.clientOwner
}

func canRecordWeight(rel relation) bool {
	return rel.admin || rel.shopOwner || rel.assignedRider
}

func isRider(id *int64, accountID int64) bool {
	return id != nil && *id == accountID
}
