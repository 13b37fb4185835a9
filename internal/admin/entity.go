package admin

// Admin is an operator account allowed to modify student records.
type Admin struct {
	ID             string `json:"_id" bson:"_id"`
	Username       string `json:"username" bson:"username"`
	HashedPassword string `json:"hashedPassword" bson:"hashedPassword"`
	CreatedAt      int64  `json:"createdAt" bson:"createdAt"`
}
