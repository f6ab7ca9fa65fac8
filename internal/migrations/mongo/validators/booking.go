package validators

import "go.mongodb.org/mongo-driver/bson"

// BookingValidator tolerates both document generations: session-based
// bookings and flat legacy documents carrying hall and event_date.
var BookingValidator = bson.M{
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

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"enquiry",
					"tentative",
					"confirmed",
					"cancelled",
				},
			},

			"hall": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"event_date": bson.M{
				"bsonType": "string",
			},

			"sessions": bson.M{
				"bsonType": "array",
				"maxItems": 20,
				"items": bson.M{
					"bsonType": "object",
					"required": []string{
						"session_name",
						"venue",
						"session_date",
						"start_time",
						"end_time",
					},
					"properties": bson.M{
						"session_name": bson.M{
							"bsonType":  "string",
							"minLength": 1,
							"maxLength": 100,
						},
						"venue": bson.M{
							"bsonType":  "string",
							"minLength": 1,
							"maxLength": 100,
						},
						"session_date": bson.M{
							"bsonType": "string",
						},
						"start_time": bson.M{
							"bsonType": "string",
							"pattern":  "^([01][0-9]|2[0-3]):[0-5][0-9]$",
						},
						"end_time": bson.M{
							"bsonType": "string",
							"pattern":  "^([01][0-9]|2[0-3]):[0-5][0-9]$",
						},
						"headcount": bson.M{
							"bsonType": "int",
							"minimum":  0,
							"maximum":  10000,
						},
					},
				},
			},

			"guest_count": bson.M{
				"bsonType": "int",
				"minimum":  0,
				"maximum":  10000,
			},

			"rooms_required": bson.M{
				"bsonType": "int",
				"minimum":  0,
				"maximum":  1000,
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
