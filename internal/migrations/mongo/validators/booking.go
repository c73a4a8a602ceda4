package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"created_at",
			"name",
			"phone",
			"service",
			"staff",
			"date",
			"time",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"phone": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"email": bson.M{
				"bsonType": "string",
			},

			"service": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"staff": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"date": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"time": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"notes": bson.M{
				"bsonType": "string",
			},

			"seq": bson.M{
				"bsonType": "long",
			},
		},
	},
}
