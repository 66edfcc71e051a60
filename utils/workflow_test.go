package utils

import (
	"testing"

	"github.com/Adarsh-512/ShopSphere/models"
	"github.com/stretchr/testify/assert"
)

func TestOrderTransitions(t *testing.T) {
	assert.True(t, CanTransitionOrder(models.OrderStatusPending, models.OrderStatusApproved))
	assert.True(t, CanTransitionOrder(models.OrderStatusPending, models.OrderStatusRejected))
	assert.True(t, CanTransitionOrder(models.OrderStatusPending, models.OrderStatusCancelled))

	// Approved orders never go back or get cancelled through the workflow.
	assert.False(t, CanTransitionOrder(models.OrderStatusApproved, models.OrderStatusPending))
	assert.False(t, CanTransitionOrder(models.OrderStatusApproved, models.OrderStatusCancelled))
	assert.False(t, CanTransitionOrder(models.OrderStatusApproved, models.OrderStatusRejected))
}

func TestOrderTerminalStatesAreImmovable(t *testing.T) {
	all := []string{
		models.OrderStatusPending,
		models.OrderStatusApproved,
		models.OrderStatusRejected,
		models.OrderStatusCancelled,
	}
	for _, terminal := range []string{models.OrderStatusRejected, models.OrderStatusCancelled} {
		assert.True(t, IsTerminalOrderStatus(terminal))
		for _, next := range all {
			assert.False(t, CanTransitionOrder(terminal, next),
				"%s must not move to %s", terminal, next)
		}
	}
}

func TestRefundTransitions(t *testing.T) {
	assert.True(t, CanTransitionRefund(models.RefundStatusPending, models.RefundStatusApproved))
	assert.True(t, CanTransitionRefund(models.RefundStatusPending, models.RefundStatusRejected))
	assert.True(t, CanTransitionRefund(models.RefundStatusApproved, models.RefundStatusProcessing))
	assert.True(t, CanTransitionRefund(models.RefundStatusProcessing, models.RefundStatusCompleted))

	// No skipping stages.
	assert.False(t, CanTransitionRefund(models.RefundStatusPending, models.RefundStatusProcessing))
	assert.False(t, CanTransitionRefund(models.RefundStatusPending, models.RefundStatusCompleted))
	assert.False(t, CanTransitionRefund(models.RefundStatusApproved, models.RefundStatusCompleted))

	// No going back.
	assert.False(t, CanTransitionRefund(models.RefundStatusApproved, models.RefundStatusPending))
	assert.False(t, CanTransitionRefund(models.RefundStatusProcessing, models.RefundStatusApproved))
}

func TestRefundTerminalStatesAreImmovable(t *testing.T) {
	all := []string{
		models.RefundStatusPending,
		models.RefundStatusApproved,
		models.RefundStatusRejected,
		models.RefundStatusProcessing,
		models.RefundStatusCompleted,
	}
	for _, terminal := range []string{models.RefundStatusRejected, models.RefundStatusCompleted} {
		assert.True(t, IsTerminalRefundStatus(terminal))
		for _, next := range all {
			assert.False(t, CanTransitionRefund(terminal, next),
				"%s must not move to %s", terminal, next)
		}
	}
}

func TestNextProcessingStepWalksTheFullSequence(t *testing.T) {
	step := models.ProcessingStepNone
	var walked []string
	for {
		next, ok := NextProcessingStep(step)
		if !ok {
			break
		}
		walked = append(walked, next)
		step = next
	}

	assert.Equal(t, []string{
		models.ProcessingStepPreparing,
		models.ProcessingStepPacking,
		models.ProcessingStepWaitingToDelivery,
		models.ProcessingStepOnTheWay,
		models.ProcessingStepFinished,
	}, walked)

	_, ok := NextProcessingStep(models.ProcessingStepFinished)
	assert.False(t, ok)
}

func TestNextProcessingStepUnknown(t *testing.T) {
	_, ok := NextProcessingStep("shipped")
	assert.False(t, ok)
}

func TestValidProcessingStep(t *testing.T) {
	assert.True(t, ValidProcessingStep(models.ProcessingStepPacking))
	assert.False(t, ValidProcessingStep("queued"))
}
