package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile status values. A profile is created pending payment and only ever
// moves forward to approved; there is no rejected or expired state.
const (
	StatusPendingPayment = "pending_payment"
	StatusApproved       = "approved"
)

// Profile is one submitted social-media profile stored in Mongo. The gallery
// only ever shows profiles with status "approved".
type Profile struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Link        string             `json:"link" bson:"link"`
	Platform    string             `json:"platform" bson:"platform"`
	Email       string             `json:"email" bson:"email,omitempty"`
	PhotoURL    string             `json:"photoUrl" bson:"photo_url"`
	Status      string             `json:"status" bson:"status"`
	Timestamp   time.Time          `json:"timestamp" bson:"timestamp"`
}

// SubmissionResponse is returned after a successful profile submission. The
// client redirects to PaymentURL to complete the purchase.
type SubmissionResponse struct {
	Message    string `json:"message"`
	PaymentURL string `json:"payment_url,omitempty"`
}
