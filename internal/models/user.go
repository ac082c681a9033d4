// Package models holds the data shapes shared between the Supabase client
// and the HTTP handlers.
package models

// user_info columns this service reads or writes.
const (
	ColumnAPIValue      = "api_value"
	ColumnAPIAt         = "api_at"
	ColumnProductToken  = "product_token"
	ColumnProductPeriod = "product_period"
)

// ProductInfo is the subscription slice of a user_info row.
// Token is nil when the stored product_token is null; Period is the stored
// truthy value already coerced to 1 or 0.
type ProductInfo struct {
	Token  *string
	Period int
}
