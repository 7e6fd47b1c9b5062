package mongostore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func stageNames(t *testing.T, stages []bson.D) []string {
	t.Helper()
	names := make([]string, 0, len(stages))
	for _, s := range stages {
		require.Len(t, s, 1)
		names = append(names, s[0].Key)
	}
	return names
}

func TestCustomerOrdersPipeline(t *testing.T) {
	p := customerOrdersPipeline("ann@example.com")

	assert.Equal(t,
		[]string{"$match", "$addFields", "$lookup", "$unwind", "$addFields", "$project"},
		stageNames(t, p),
	)
	assert.Equal(t, bson.D{{Key: "userInfo.email", Value: "ann@example.com"}}, p[0][0].Value)
	assert.Equal(t, "$plantDoc", p[3][0].Value)

	assert.Equal(t, bson.D{
		{Key: "plantId", Value: bson.D{{Key: "$convert", Value: bson.D{
			{Key: "input", Value: "$plantInfo.plantId"},
			{Key: "to", Value: "objectId"},
			{Key: "onError", Value: nil},
			{Key: "onNull", Value: nil},
		}}}},
	}, p[1][0].Value, "a non-hex plantId must become null instead of failing the aggregation")

	merged := p[4][0].Value.(bson.D).Map()
	assert.Equal(t, "$plantDoc.image", merged["image"])
	assert.Equal(t, "$plantDoc.name", merged["name"])
	assert.Equal(t, "$plantDoc.category", merged["category"])
	assert.Equal(t, "$plantDoc.price", merged["price"])
	assert.Equal(t, "$plantInfo.totalQuantity", merged["quantity"])

	lookup := p[2][0].Value.(bson.D).Map()
	assert.Equal(t, "plants", lookup["from"])
	assert.Equal(t, "plantId", lookup["localField"])
	assert.Equal(t, "_id", lookup["foreignField"])

	assert.Equal(t, bson.D{{Key: "plantDoc", Value: 0}}, p[5][0].Value)
}

func TestSellerOrdersPipeline_MergesOnlyName(t *testing.T) {
	p := sellerOrdersPipeline("sam@example.com")

	assert.Equal(t, customerOrdersPipeline("x")[1], p[1], "both listings convert plantId the same way")

	assert.Equal(t, bson.D{{Key: "seller", Value: "sam@example.com"}}, p[0][0].Value)
	merged := p[4][0].Value.(bson.D)
	require.Len(t, merged, 1)
	assert.Equal(t, "name", merged[0].Key)
}

func TestQuantityIncrement(t *testing.T) {
	assert.Equal(t, bson.M{"$inc": bson.M{"quantity": -3}}, quantityIncrement(-3))
}
