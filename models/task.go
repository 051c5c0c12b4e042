package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
)

// Task is a single to-do card. The client owns the document shape: besides
// the fields the backend needs for lookups and drag-and-drop, everything the
// client sends is stored verbatim and replaced wholesale on update.
type Task struct {
	ID       string `bson:"id" json:"id"`
	User     string `bson:"user" json:"user"`
	Category string `bson:"category" json:"category"`
	Extra    bson.M `bson:",inline" json:"-"`
}

func (t Task) MarshalJSON() ([]byte, error) {
	doc := make(map[string]interface{}, len(t.Extra)+3)
	for k, v := range t.Extra {
		doc[k] = v
	}
	doc["id"] = t.ID
	doc["user"] = t.User
	doc["category"] = t.Category
	return json.Marshal(doc)
}

func (t *Task) UnmarshalJSON(data []byte) error {
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	t.ID, _ = doc["id"].(string)
	t.User, _ = doc["user"].(string)
	t.Category, _ = doc["category"].(string)
	delete(doc, "id")
	delete(doc, "user")
	delete(doc, "category")
	if len(doc) > 0 {
		t.Extra = bson.M(doc)
	} else {
		t.Extra = nil
	}
	return nil
}
