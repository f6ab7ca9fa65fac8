package validators

import "go.mongodb.org/mongo-driver/bson"

var VenueValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"capacity",
			"active",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"capacity": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  10000,
			},

			"venue_type": bson.M{
				"bsonType": "string",
				"enum": []string{
					"hall",
					"lawn",
					"poolside",
					"rooftop",
				},
			},

			"price_per_day": bson.M{
				"bsonType": []string{"double", "int", "long"},
				"minimum":  0,
			},

			"active": bson.M{
				"bsonType": "bool",
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

var RoomTypeValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"total_rooms",
			"active",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"total_rooms": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  1000,
			},

			"price_per_night": bson.M{
				"bsonType": []string{"double", "int", "long"},
				"minimum":  0,
			},

			"max_occupancy": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  20,
			},

			"active": bson.M{
				"bsonType": "bool",
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

var MenuPackageValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"price_per_plate",
			"active",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"price_per_plate": bson.M{
				"bsonType": []string{"double", "int", "long"},
				"minimum":  0,
			},

			"menu_type": bson.M{
				"bsonType": "string",
				"enum": []string{
					"veg",
					"nonveg",
					"mixed",
				},
			},

			"items": bson.M{
				"bsonType": "array",
				"maxItems": 100,
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"active": bson.M{
				"bsonType": "bool",
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
