package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered account keyed by email. Profile fields beyond the
// email are client-defined and stored as sent; createdAt and _id are
// server-assigned and never accepted from the request body.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Email     string             `bson:"email" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"-"`
	Extra     bson.M             `bson:",inline" json:"-"`
}

func (u User) MarshalJSON() ([]byte, error) {
	doc := make(map[string]interface{}, len(u.Extra)+3)
	for k, v := range u.Extra {
		doc[k] = v
	}
	if !u.ID.IsZero() {
		doc["_id"] = u.ID.Hex()
	}
	doc["email"] = u.Email
	if !u.CreatedAt.IsZero() {
		doc["createdAt"] = u.CreatedAt
	}
	return json.Marshal(doc)
}

func (u *User) UnmarshalJSON(data []byte) error {
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	u.Email, _ = doc["email"].(string)
	delete(doc, "email")
	delete(doc, "_id")
	delete(doc, "createdAt")
	if len(doc) > 0 {
		u.Extra = bson.M(doc)
	} else {
		u.Extra = nil
	}
	return nil
}
