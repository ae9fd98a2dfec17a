package mapping

import (
	"sort"

	"github.com/femi/bookmart-settlement/pkg/api"
	"github.com/femi/bookmart-settlement/pkg/gateway"
	"github.com/femi/bookmart-settlement/pkg/models"
)

// ToApiTransaction converts a domain Transaction model to an API Transaction model.
func ToApiTransaction(tx *models.Transaction) *api.Transaction {
	return &api.Transaction{
		Id:           tx.Id,
		GatewayRef:   tx.GatewayRef,
		BuyerRef:     tx.BuyerRef,
		SellerRef:    tx.SellerRef,
		BookRef:      tx.BookRef,
		Amount:       tx.Amount,
		SellerAmount: tx.SellerAmount,
		PlatformFee:  tx.PlatformFee,
		Status:       string(tx.Status),
		CreatedAt:    tx.CreatedAt,
	}
}

// ToApiEntitlement converts a domain Entitlement model to an API Entitlement model.
func ToApiEntitlement(ent *models.Entitlement) *api.Entitlement {
	return &api.Entitlement{
		BookRef:        ent.BookRef,
		TransactionRef: ent.TransactionRef,
		Title:          ent.Title,
		Author:         ent.Author,
		CoverURL:       ent.CoverURL,
		PurchaseDate:   ent.PurchaseDate,
	}
}

// ToApiSellerLedger converts a domain SellerLedger model to an API
// SellerLedger model, flattening the sales map into a list ordered by sale
// time, most recent first.
func ToApiSellerLedger(ledger *models.SellerLedger) *api.SellerLedger {
	sales := make([]api.SaleRecord, 0, len(ledger.Sales))
	for txID, sale := range ledger.Sales {
		sales = append(sales, api.SaleRecord{
			TransactionId: txID,
			BookRef:       sale.BookRef,
			BuyerRef:      sale.BuyerRef,
			Amount:        sale.Amount,
			SoldAt:        sale.SoldAt,
		})
	}
	sort.Slice(sales, func(i, j int) bool {
		return sales[i].SoldAt.After(sales[j].SoldAt)
	})

	return &api.SellerLedger{
		SellerRef:      ledger.SellerRef,
		AccountBalance: ledger.AccountBalance,
		TotalEarnings:  ledger.TotalEarnings,
		BooksSold:      ledger.BooksSold,
		Sales:          sales,
	}
}

// ToDomainIntent converts an API PurchaseIntent to a domain PurchaseIntent.
func ToDomainIntent(intent *api.PurchaseIntent) *models.PurchaseIntent {
	return &models.PurchaseIntent{
		BookRef: intent.BookRef,
		Amount:  intent.Amount,
		BuyerContact: models.BuyerContact{
			Email:       string(intent.BuyerContact.Email),
			Phone:       intent.BuyerContact.Phone,
			DisplayName: intent.BuyerContact.DisplayName,
		},
	}
}

// ToPaymentResult converts a checkout callback to the gateway PaymentResult.
func ToPaymentResult(cb *api.CheckoutCallback) gateway.PaymentResult {
	return gateway.PaymentResult{
		Status:        cb.Status,
		TransactionId: cb.TransactionId,
		TxRef:         cb.TxRef,
		FlwRef:        cb.FlwRef,
		PaymentType:   cb.PaymentType,
	}
}
