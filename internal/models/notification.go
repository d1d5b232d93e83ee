package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationTTL is how long a read notification is kept before purging.
const NotificationTTL = 7 * 24 * time.Hour

// Notification is a per-user in-app notification. Read notifications are
// purged once they are older than NotificationTTL.
type Notification struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserEmail  string             `bson:"userEmail" json:"userEmail"`
	Type       string             `bson:"type" json:"type"` // NEW_ANSWER, ANSWER_ACCEPTED, etc.
	Title      string             `bson:"title" json:"title"`
	Message    string             `bson:"message" json:"message"`
	QuestionID string             `bson:"questionId,omitempty" json:"questionId,omitempty"`
	Tags       []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	IsRead     bool               `bson:"isRead" json:"isRead"`
	ReadAt     time.Time          `bson:"readAt,omitempty" json:"readAt,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
