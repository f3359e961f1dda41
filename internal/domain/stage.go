package domain

import "fmt"

// Stage стадия исполнения заказа. Значение хранит количество пройденных стадий:
// StageNone - ни одна стадия не пройдена, StageTransactionCompleted - пройдены все.
// Флаги жизненного цикла выводятся из индекса, поэтому пропуск стадии непредставим.
type Stage int

const (
	StageNone Stage = iota
	StageAcceptedByShop
	StagePickedUpFromClient
	StageLaundryStarted
	StageReadyForDelivery
	StagePickedUpFromShop
	StageOutForDelivery
	StageReceivedByClient
	StageTransactionCompleted
)

// FinalStage последняя стадия, завершающая сделку
const FinalStage = StageTransactionCompleted

var stageNames = [...]string{
	StageNone:                 "none",
	StageAcceptedByShop:       "accepted_by_shop",
	StagePickedUpFromClient:   "picked_up_from_client",
	StageLaundryStarted:       "laundry_started",
	StageReadyForDelivery:     "ready_for_delivery",
	StagePickedUpFromShop:     "picked_up_from_shop",
	StageOutForDelivery:       "out_for_delivery",
	StageReceivedByClient:     "received_by_client",
	StageTransactionCompleted: "transaction_completed",
}

func (s Stage) String() string {
	if s < StageNone || s > FinalStage {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// IsValid сообщает, является ли значение реальной стадией (не StageNone)
func (s Stage) IsValid() bool {
	return s > StageNone && s <= FinalStage
}

// Stages возвращает упорядоченный список стадий
func Stages() []Stage {
	stages := make([]Stage, 0, int(FinalStage))
	for s := StageAcceptedByShop; s <= FinalStage; s++ {
		stages = append(stages, s)
	}
	return stages
}

// ParseStage разбирает имя стадии
func ParseStage(name string) (Stage, error) {
	for s := StageAcceptedByShop; s <= FinalStage; s++ {
		if stageNames[s] == name {
			return s, nil
		}
	}
	return StageNone, fmt.Errorf("%w: %q", ErrUnknownStage, name)
}
