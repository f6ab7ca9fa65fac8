package validators

import "go.mongodb.org/mongo-driver/bson"

var EnquiryValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"client_name",
			"event_type",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"client_name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"contact_phone": bson.M{
				"bsonType":  "string",
				"maxLength": 20,
			},

			"event_type": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"expected_guests": bson.M{
				"bsonType": "int",
				"minimum":  0,
				"maximum":  10000,
			},

			"preferred_venue": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"event_date": bson.M{
				"bsonType": "string",
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"new",
					"contacted",
					"quoted",
					"converted",
					"lost",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
