package utils

import (
	"github.com/Adarsh-512/ShopSphere/models"
)

// Forward-only order status transitions. Terminal states have no entry,
// so any attempt to move out of them fails the lookup.
var orderTransitions = map[string][]string{
	models.OrderStatusPending: {
		models.OrderStatusApproved,
		models.OrderStatusRejected,
		models.OrderStatusCancelled,
	},
}

// Forward-only refund status transitions.
var refundTransitions = map[string][]string{
	models.RefundStatusPending: {
		models.RefundStatusApproved,
		models.RefundStatusRejected,
	},
	models.RefundStatusApproved: {
		models.RefundStatusProcessing,
	},
	models.RefundStatusProcessing: {
		models.RefundStatusCompleted,
	},
}

// The fixed sequence of processing steps for an approved order.
var processingSteps = []string{
	models.ProcessingStepNone,
	models.ProcessingStepPreparing,
	models.ProcessingStepPacking,
	models.ProcessingStepWaitingToDelivery,
	models.ProcessingStepOnTheWay,
	models.ProcessingStepFinished,
}

// CanTransitionOrder reports whether an order may move from current to
// next. There is no path back to an earlier state.
func CanTransitionOrder(current, next string) bool {
	for _, allowed := range orderTransitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CanTransitionRefund reports whether a refund may move from current to
// next.
func CanTransitionRefund(current, next string) bool {
	for _, allowed := range refundTransitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminalOrderStatus reports whether no further order transition is
// permitted from status.
func IsTerminalOrderStatus(status string) bool {
	return status == models.OrderStatusRejected || status == models.OrderStatusCancelled
}

// IsTerminalRefundStatus reports whether no further refund transition is
// permitted from status.
func IsTerminalRefundStatus(status string) bool {
	return status == models.RefundStatusRejected || status == models.RefundStatusCompleted
}

// NextProcessingStep returns the step after current. ok is false when
// current is unknown or already the final step.
func NextProcessingStep(current string) (string, bool) {
	for i, step := range processingSteps {
		if step == current {
			if i+1 < len(processingSteps) {
				return processingSteps[i+1], true
			}
			return "", false
		}
	}
	return "", false
}

// ValidProcessingStep reports whether step is one of the known steps.
func ValidProcessingStep(step string) bool {
	for _, s := range processingSteps {
		if s == step {
			return true
		}
	}
	return false
}
