package model

import "github.com/bwmarrin/snowflake"

// OrderState is the fulfillment stage derived from an order's flags.
type OrderState string

const (
	OrderRequested OrderState = "requested"
	OrderReceived  OrderState = "received"
	OrderCompleted OrderState = "completed"
)

// Order is a claim placed by a user on a food item. At most one exists per (food, user).
type Order struct {
	ID       snowflake.ID `json:"uid" db:"id"`
	FoodID   snowflake.ID `json:"foodId" db:"food_id"`
	UserID   snowflake.ID `json:"userId" db:"user_id"`
	Received bool         `json:"received" db:"received"`
	Complete bool         `json:"complete" db:"complete"`
}

// State reports the stage of o. Completed wins over received.
func (o Order) State() OrderState {
	switch {
	case o.Complete:
		return OrderCompleted
	case o.Received:
		return OrderReceived
	default:
		return OrderRequested
	}
}

// OrderUpdate is a partial update; nil fields are left unchanged.
type OrderUpdate struct {
	Received *bool `json:"received"`
	Complete *bool `json:"complete"`
}
