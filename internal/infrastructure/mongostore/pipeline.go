package mongostore

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const joinedPlant = "plantDoc"

// customerOrdersPipeline matches the buyer's orders and merges display fields from the plant.
// $unwind drops orders whose plant is gone, so the join is an inner join.
func customerOrdersPipeline(email string) mongo.Pipeline {
	return joinPipeline(
		bson.D{{Key: "userInfo.email", Value: email}},
		bson.D{
			{Key: "image", Value: "$" + joinedPlant + ".image"},
			{Key: "name", Value: "$" + joinedPlant + ".name"},
			{Key: "category", Value: "$" + joinedPlant + ".category"},
			{Key: "price", Value: "$" + joinedPlant + ".price"},
			{Key: "quantity", Value: "$plantInfo.totalQuantity"},
		},
	)
}

func sellerOrdersPipeline(sellerEmail string) mongo.Pipeline {
	return joinPipeline(
		bson.D{{Key: "seller", Value: sellerEmail}},
		bson.D{
			{Key: "name", Value: "$" + joinedPlant + ".name"},
		},
	)
}

func joinPipeline(match, merge bson.D) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		// A plantId that is not an ObjectID becomes null and joins nothing.
		{{Key: "$addFields", Value: bson.D{
			{Key: "plantId", Value: bson.D{{Key: "$convert", Value: bson.D{
				{Key: "input", Value: "$plantInfo.plantId"},
				{Key: "to", Value: "objectId"},
				{Key: "onError", Value: nil},
				{Key: "onNull", Value: nil},
			}}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: plantsCollection},
			{Key: "localField", Value: "plantId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: joinedPlant},
		}}},
		{{Key: "$unwind", Value: "$" + joinedPlant}},
		{{Key: "$addFields", Value: merge}},
		{{Key: "$project", Value: bson.D{{Key: joinedPlant, Value: 0}}}},
	}
}
