package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strconv"

	"github.com/Adarsh-512/ShopSphere/config"
	"github.com/Adarsh-512/ShopSphere/models"
	"github.com/Adarsh-512/ShopSphere/utils"
	"github.com/gin-gonic/gin"
	razorpay "github.com/razorpay/razorpay-go"
	"github.com/shopspring/decimal"
)

func razorpayClient() *razorpay.Client {
	return razorpay.NewClient(os.Getenv("RAZORPAY_KEY_ID"), os.Getenv("RAZORPAY_KEY_SECRET"))
}

// InitiatePayment creates a Razorpay order for a pending online order.
// Razorpay wants the amount in the currency's minor unit.
func InitiatePayment(c *gin.Context) {
	utils.LogInfo("InitiatePayment called")

	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	userID := user.(models.User).ID

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}
	if order.PaymentMethod != "online" {
		utils.BadRequest(c, "Order is not an online payment order", nil)
		return
	}
	if order.PaymentConfirmed {
		utils.Conflict(c, "Order is already paid", nil)
		return
	}

	amountMinor := order.FinalTotal.Mul(decimal.NewFromInt(100)).IntPart()
	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": config.App.Store.Currency,
		"receipt":  "order_" + strconv.Itoa(int(order.ID)),
	}
	rzpOrder, err := razorpayClient().Order.Create(data, nil)
	if err != nil {
		utils.LogError("Failed to create razorpay order for order %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to initiate payment", nil)
		return
	}

	rzpOrderID, _ := rzpOrder["id"].(string)
	if err := config.DB.Model(&order).Update("razorpay_order_id", rzpOrderID).Error; err != nil {
		utils.InternalServerError(c, "Failed to save payment reference", nil)
		return
	}

	utils.LogInfo("Razorpay order %s created for order %d", rzpOrderID, order.ID)
	utils.Success(c, "Payment initiated", gin.H{
		"razorpay_order_id": rzpOrderID,
		"amount":            amountMinor,
		"currency":          config.App.Store.Currency,
		"key_id":            os.Getenv("RAZORPAY_KEY_ID"),
	})
}

// VerifyPaymentRequest carries the checkout callback fields from Razorpay
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// VerifyPayment checks the Razorpay signature and marks the order paid.
// The expected signature is HMAC-SHA256 of "order_id|payment_id" keyed
// with the API secret.
func VerifyPayment(c *gin.Context) {
	utils.LogInfo("VerifyPayment called")

	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	userID := user.(models.User).ID

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var order models.Order
	if err := config.DB.Where("razorpay_order_id = ? AND user_id = ?", req.RazorpayOrderID, userID).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found for this payment")
		return
	}

	mac := hmac.New(sha256.New, []byte(os.Getenv("RAZORPAY_KEY_SECRET")))
	mac.Write([]byte(req.RazorpayOrderID + "|" + req.RazorpayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(req.RazorpaySignature)) {
		utils.LogError("Signature mismatch for order %d", order.ID)
		utils.BadRequest(c, "Payment verification failed", nil)
		return
	}

	if err := config.DB.Model(&order).Update("payment_confirmed", true).Error; err != nil {
		utils.InternalServerError(c, "Failed to confirm payment", nil)
		return
	}

	utils.LogInfo("Payment confirmed for order %d", order.ID)
	utils.Success(c, "Payment verified successfully", gin.H{
		"order_id":          order.ID,
		"payment_confirmed": true,
	})
}
