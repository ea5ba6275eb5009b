// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "securityDefinitions": {
        "UserToken": {"type": "apiKey", "in": "header", "name": "X-Whop-User-Token"}
    },
    "paths": {
        "/experiences/{experienceId}/marketplaces": {
            "get": {
                "summary": "List marketplaces of an experience",
                "parameters": [{"$ref": "#/parameters/experienceId"}],
                "responses": {"200": {"description": "marketplaces, newest first"}, "400": {"$ref": "#/responses/Error"}}
            },
            "post": {
                "summary": "Create a marketplace",
                "parameters": [
                    {"$ref": "#/parameters/experienceId"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/MarketplaceCreate"}}
                ],
                "responses": {"201": {"description": "created marketplace"}, "400": {"$ref": "#/responses/Error"}}
            }
        },
        "/experiences/{experienceId}/marketplaces/{marketplaceId}": {
            "get": {
                "summary": "Get an active marketplace",
                "parameters": [{"$ref": "#/parameters/experienceId"}, {"$ref": "#/parameters/marketplaceId"}],
                "responses": {"200": {"description": "marketplace"}, "400": {"$ref": "#/responses/Error"}, "404": {"$ref": "#/responses/Error"}}
            }
        },
        "/experiences/{experienceId}/memberships": {
            "get": {
                "summary": "List memberships of an experience",
                "parameters": [{"$ref": "#/parameters/experienceId"}],
                "responses": {"200": {"description": "memberships, newest first"}, "400": {"$ref": "#/responses/Error"}}
            }
        },
        "/experiences/{experienceId}/access": {
            "get": {
                "summary": "Resolve the caller's access level",
                "security": [{"UserToken": []}],
                "parameters": [{"$ref": "#/parameters/experienceId"}],
                "responses": {"200": {"description": "userId and accessLevel"}, "401": {"$ref": "#/responses/Error"}}
            }
        },
        "/marketplaces/{marketplaceId}/edit": {
            "patch": {
                "summary": "Rename a marketplace (admin)",
                "security": [{"UserToken": []}],
                "parameters": [
                    {"$ref": "#/parameters/marketplaceId"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/MarketplaceUpdate"}}
                ],
                "responses": {"200": {"description": "updated marketplace"}, "400": {"$ref": "#/responses/Error"}, "401": {"$ref": "#/responses/Error"}, "403": {"$ref": "#/responses/Error"}, "404": {"$ref": "#/responses/Error"}}
            }
        },
        "/marketplaces/{marketplaceId}/status": {
            "patch": {
                "summary": "Activate or deactivate a marketplace (admin)",
                "security": [{"UserToken": []}],
                "parameters": [
                    {"$ref": "#/parameters/marketplaceId"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/MarketplaceStatus"}}
                ],
                "responses": {"200": {"description": "updated marketplace"}, "400": {"$ref": "#/responses/Error"}, "401": {"$ref": "#/responses/Error"}, "403": {"$ref": "#/responses/Error"}, "404": {"$ref": "#/responses/Error"}}
            }
        },
        "/marketplaces/{marketplaceId}": {
            "delete": {
                "summary": "Archive a marketplace (admin)",
                "security": [{"UserToken": []}],
                "parameters": [{"$ref": "#/parameters/marketplaceId"}],
                "responses": {"200": {"description": "archived marketplace"}, "401": {"$ref": "#/responses/Error"}, "403": {"$ref": "#/responses/Error"}, "404": {"$ref": "#/responses/Error"}}
            }
        },
        "/marketplaces/{marketplaceId}/items": {
            "get": {
                "summary": "List active items",
                "parameters": [
                    {"$ref": "#/parameters/marketplaceId"},
                    {"in": "query", "name": "limit", "type": "integer", "default": 10, "maximum": 100, "minimum": 1},
                    {"in": "query", "name": "skip", "type": "integer", "default": 0, "minimum": 0}
                ],
                "responses": {"200": {"description": "items, total and hasMore"}, "400": {"$ref": "#/responses/Error"}, "404": {"$ref": "#/responses/Error"}}
            },
            "post": {
                "summary": "Create an item",
                "parameters": [
                    {"$ref": "#/parameters/marketplaceId"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/ItemCreate"}}
                ],
                "responses": {"201": {"description": "created item"}, "400": {"$ref": "#/responses/Error"}, "404": {"$ref": "#/responses/Error"}}
            }
        },
        "/marketplaces/{marketplaceId}/items/{itemId}": {
            "get": {
                "summary": "Get an active item",
                "parameters": [{"$ref": "#/parameters/marketplaceId"}, {"$ref": "#/parameters/itemId"}],
                "responses": {"200": {"description": "item"}, "400": {"$ref": "#/responses/Error"}, "404": {"$ref": "#/responses/Error"}}
            },
            "delete": {
                "summary": "Soft-delete an item",
                "parameters": [{"$ref": "#/parameters/marketplaceId"}, {"$ref": "#/parameters/itemId"}],
                "responses": {"200": {"description": "deleted item id and title"}, "400": {"$ref": "#/responses/Error"}, "404": {"$ref": "#/responses/Error"}}
            }
        },
        "/marketplaces/{marketplaceId}/items/{itemId}/images": {
            "post": {
                "summary": "Upload an item image",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"$ref": "#/parameters/marketplaceId"},
                    {"$ref": "#/parameters/itemId"},
                    {"in": "formData", "name": "image", "type": "file", "required": true}
                ],
                "responses": {"201": {"description": "stored image"}, "400": {"$ref": "#/responses/Error"}, "404": {"$ref": "#/responses/Error"}, "503": {"$ref": "#/responses/Error"}}
            }
        },
        "/views/experiences/{experienceId}": {
            "get": {
                "summary": "Experience home view",
                "parameters": [{"$ref": "#/parameters/experienceId"}],
                "responses": {"200": {"description": "view model"}, "400": {"$ref": "#/responses/Error"}}
            }
        },
        "/views/experiences/{experienceId}/marketplaces/{marketplaceId}": {
            "get": {
                "summary": "Marketplace page view",
                "parameters": [{"$ref": "#/parameters/experienceId"}, {"$ref": "#/parameters/marketplaceId"}],
                "responses": {"200": {"description": "view model"}, "400": {"$ref": "#/responses/Error"}, "404": {"$ref": "#/responses/Error"}}
            }
        },
        "/views/experiences/{experienceId}/marketplaces/{marketplaceId}/items/{itemId}": {
            "get": {
                "summary": "Item detail view",
                "parameters": [{"$ref": "#/parameters/experienceId"}, {"$ref": "#/parameters/marketplaceId"}, {"$ref": "#/parameters/itemId"}],
                "responses": {"200": {"description": "view model"}, "400": {"$ref": "#/responses/Error"}, "404": {"$ref": "#/responses/Error"}}
            }
        }
    },
    "parameters": {
        "experienceId": {"in": "path", "name": "experienceId", "type": "string", "required": true},
        "marketplaceId": {"in": "path", "name": "marketplaceId", "type": "string", "format": "uuid", "required": true},
        "itemId": {"in": "path", "name": "itemId", "type": "string", "format": "uuid", "required": true}
    },
    "responses": {
        "Error": {"description": "error envelope", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
    },
    "definitions": {
        "MarketplaceCreate": {
            "type": "object",
            "required": ["title", "takeRate"],
            "properties": {
                "title": {"type": "string", "minLength": 1, "maxLength": 100},
                "takeRate": {"type": "number", "minimum": 0, "maximum": 100}
            }
        },
        "MarketplaceUpdate": {
            "type": "object",
            "required": ["title"],
            "properties": {"title": {"type": "string", "minLength": 1, "maxLength": 100}}
        },
        "MarketplaceStatus": {
            "type": "object",
            "required": ["active"],
            "properties": {"active": {"type": "boolean"}}
        },
        "ItemCreate": {
            "type": "object",
            "required": ["title", "description", "priceInCents", "postedBy"],
            "properties": {
                "title": {"type": "string", "minLength": 1, "maxLength": 200},
                "description": {"type": "string", "minLength": 1, "maxLength": 5000},
                "priceInCents": {"type": "integer", "minimum": 0},
                "postedBy": {"type": "string", "minLength": 1}
            }
        },
        "ErrorEnvelope": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "message": {"type": "string"},
                        "code": {"type": "string"},
                        "details": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Experience Marketplace API",
	Description:      "Marketplaces and item listings scoped to platform experiences.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
