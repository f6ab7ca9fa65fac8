package validators

import "go.mongodb.org/mongo-driver/bson"

var QuotationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"quote_number",
			"enquiry_id",
			"client_name",
			"lines",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"quote_number": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 20,
			},

			"enquiry_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"client_name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"lines": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"maxItems": 50,
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"description", "quantity", "unit_price", "amount"},
					"properties": bson.M{
						"description": bson.M{
							"bsonType":  "string",
							"minLength": 1,
							"maxLength": 200,
						},
						"quantity": bson.M{
							"bsonType": []string{"double", "int", "long"},
							"minimum":  0,
						},
						"unit_price": bson.M{
							"bsonType": []string{"double", "int", "long"},
							"minimum":  0,
						},
						"amount": bson.M{
							"bsonType": []string{"double", "int", "long"},
							"minimum":  0,
						},
					},
				},
			},

			"subtotal": bson.M{
				"bsonType": []string{"double", "int", "long"},
				"minimum":  0,
			},

			"tax_percent": bson.M{
				"bsonType": []string{"double", "int", "long"},
				"minimum":  0,
				"maximum":  100,
			},

			"total": bson.M{
				"bsonType": []string{"double", "int", "long"},
				"minimum":  0,
			},

			"valid_until": bson.M{
				"bsonType": "date",
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"draft",
					"sent",
					"accepted",
					"rejected",
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
