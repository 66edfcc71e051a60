package controllers

import (
	"errors"

	"github.com/Adarsh-512/ShopSphere/config"
	"github.com/Adarsh-512/ShopSphere/models"
	"github.com/Adarsh-512/ShopSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// creditWallet adds an amount to a user's wallet and records the
// transaction. The wallet row is locked FOR UPDATE; the row is created
// on first credit. Caller owns the transaction.
func creditWallet(tx *gorm.DB, userID uint, amount decimal.Decimal, description, reference string) error {
	if !amount.IsPositive() {
		return errors.New("credit amount must be positive")
	}

	var wallet models.Wallet
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		wallet = models.Wallet{UserID: userID, Balance: decimal.Zero}
		if err := tx.Create(&wallet).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	newBalance := utils.RoundMoney(wallet.Balance.Add(amount))
	if err := tx.Model(&models.Wallet{}).Where("id = ?", wallet.ID).
		Update("balance", newBalance).Error; err != nil {
		return err
	}

	return tx.Create(&models.WalletTransaction{
		WalletID:    wallet.ID,
		Amount:      amount,
		Type:        models.WalletTransactionCredit,
		Description: description,
		Reference:   reference,
	}).Error
}

// GetWallet shows the user's wallet balance
func GetWallet(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	userID := user.(models.User).ID

	var wallet models.Wallet
	if err := config.DB.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Success(c, "Wallet fetched successfully", gin.H{"balance": utils.MoneyString(decimal.Zero)})
			return
		}
		utils.InternalServerError(c, "Failed to fetch wallet", nil)
		return
	}

	utils.Success(c, "Wallet fetched successfully", gin.H{
		"balance":  utils.MoneyString(wallet.Balance),
		"currency": config.App.Store.Currency,
	})
}

// GetWalletTransactions lists the user's wallet history, newest first
func GetWalletTransactions(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	userID := user.(models.User).ID
	pagination := utils.NewPagination(c)

	var wallet models.Wallet
	if err := config.DB.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		utils.SuccessWithPagination(c, "Wallet transactions fetched successfully", []gin.H{}, 0, pagination.Page, pagination.Limit)
		return
	}

	var total int64
	config.DB.Model(&models.WalletTransaction{}).Where("wallet_id = ?", wallet.ID).Count(&total)

	var transactions []models.WalletTransaction
	if err := config.DB.Where("wallet_id = ?", wallet.ID).
		Order("created_at desc, id desc").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&transactions).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch wallet transactions", nil)
		return
	}

	items := make([]gin.H, 0, len(transactions))
	for _, t := range transactions {
		items = append(items, gin.H{
			"id":          t.ID,
			"amount":      utils.MoneyString(t.Amount),
			"type":        t.Type,
			"description": t.Description,
			"reference":   t.Reference,
			"created_at":  t.CreatedAt,
		})
	}

	utils.SuccessWithPagination(c, "Wallet transactions fetched successfully", items, total, pagination.Page, pagination.Limit)
}
