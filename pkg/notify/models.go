package notify

// MessageType defines the type of a dashboard push message.
type MessageType string

const (
	// MessageTypeSettlement is for messages announcing a settled purchase.
	MessageTypeSettlement MessageType = "settlementUpdate"
)

// Message represents a generic dashboard push message.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// SettlementPayload is the payload for a settlementUpdate message.
type SettlementPayload struct {
	TransactionID string `json:"transaction_id"`
	BuyerRef      string `json:"buyer_ref"`
	SellerRef     string `json:"seller_ref,omitempty"`
	BookRef       string `json:"book_ref"`
	Title         string `json:"title,omitempty"`
	Amount        int64  `json:"amount"`
}
