// Package docs holds the OpenAPI description of the adverts catalog api.
// It is served by the swagger endpoint once registered.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/v1/adverts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["adverts"],
                "summary": "List adverts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.APIResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            },
            "post": {
                "description": "Stores a new advert and assigns its identifier.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["adverts"],
                "summary": "Create an advert",
                "parameters": [
                    {"description": "Advert without id", "name": "advert", "in": "body", "required": true, "schema": {"$ref": "#/definitions/main.Advert"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/main.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.APIError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            }
        },
        "/v1/adverts/batch": {
            "post": {
                "description": "Stores all adverts in order. Either all adverts are created or none.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["adverts"],
                "summary": "Create a batch of adverts",
                "parameters": [
                    {"description": "Adverts without id", "name": "adverts", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/main.Advert"}}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/main.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.APIError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            }
        },
        "/v1/adverts/category/{category}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["adverts"],
                "summary": "List adverts of a category",
                "parameters": [
                    {"type": "string", "description": "Exact category name", "name": "category", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.APIResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            }
        },
        "/v1/adverts/price": {
            "get": {
                "produces": ["application/json"],
                "tags": ["adverts"],
                "summary": "List adverts priced at most maxPrice",
                "parameters": [
                    {"minimum": 0, "type": "number", "description": "Inclusive upper price bound", "name": "maxPrice", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.APIError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            }
        },
        "/v1/adverts/{id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["adverts"],
                "summary": "Replace an advert",
                "parameters": [
                    {"maximum": 999999, "minimum": 100000, "type": "integer", "description": "Advert id", "name": "id", "in": "path", "required": true},
                    {"description": "New advert content", "name": "advert", "in": "body", "required": true, "schema": {"$ref": "#/definitions/main.Advert"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/main.APIError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            },
            "delete": {
                "description": "Deleting an unknown advert succeeds without effect.",
                "tags": ["adverts"],
                "summary": "Delete an advert",
                "parameters": [
                    {"maximum": 999999, "minimum": 100000, "type": "integer", "description": "Advert id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.APIError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            }
        }
    },
    "definitions": {
        "main.APIError": {
            "type": "object",
            "properties": {
                "data": {},
                "message": {"type": "string"},
                "requestid": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "main.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "message": {"type": "string"},
                "requestid": {"type": "string"},
                "status": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "main.Advert": {
            "type": "object",
            "required": ["category", "title"],
            "properties": {
                "category": {"type": "string", "maxLength": 128},
                "description": {"type": "string", "maxLength": 4096},
                "id": {"type": "integer"},
                "price": {"type": "number", "minimum": 0},
                "title": {"type": "string", "maxLength": 256}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Adverts Catalog API",
	Description:      "In-memory classified adverts catalog indexed by id, category and price.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
