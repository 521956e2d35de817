package types

// NotificationInput describes a message to deliver. Type defaults to info.
type NotificationInput struct {
	UserID    string
	Title     string
	Message   string
	Type      string
	ActionURL string
	ProductID string
	MarketID  string
}
