package models

import "time"

// CartItem associates a product snapshot with a desired quantity.
// Quantity is always >= 1; an item whose quantity drops to zero is removed.
type CartItem struct {
	Product  Product   `json:"product" bson:"product"`
	Quantity int       `json:"quantity" bson:"quantity"`
	AddedAt  time.Time `json:"addedAt" bson:"addedAt"`
}

// Purchase is an immutable record of a completed checkout. Once created it is
// only ever appended to the history, never mutated.
type Purchase struct {
	ID           string     `json:"id" bson:"_id"`
	Items        []CartItem `json:"items" bson:"items"`
	Total        int64      `json:"total" bson:"total"`
	Timestamp    time.Time  `json:"timestamp" bson:"timestamp"`
	WhatsappSent bool       `json:"whatsappSent" bson:"whatsappSent"`
}

// CartState is the aggregate a session owns: current items in insertion order
// plus the append-only purchase log. Loaded guards against persisting an empty
// initial state over genuine prior data before the restore has resolved.
type CartState struct {
	Items     []CartItem `json:"items"`
	Purchases []Purchase `json:"purchases"`
	Loaded    bool       `json:"-"`
}

// Admin is a dashboard operator account.
type Admin struct {
	ID       string `json:"id" bson:"_id"`
	Email    string `json:"email" bson:"email"`
	Name     string `json:"name" bson:"name"`
	Password string `json:"-" bson:"password"` // bcrypt hash
}
