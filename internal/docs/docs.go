// Package docs registra la definición OpenAPI que sirve /swagger/*.
// Mantener alineado con las anotaciones godoc de los handlers (swag init regenera este archivo).
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/users/register": {
            "post": {
                "tags": ["users"], "summary": "Register a user and return a bearer token",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/registerRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/sessionResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/users/login": {
            "post": {
                "tags": ["users"], "summary": "Exchange email and password for a bearer token",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/sessionResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/pets": {
            "get": {
                "tags": ["pets"], "summary": "List every pet, newest first", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/petResponse"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["pets"], "summary": "List a pet for adoption",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/petRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/petResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/pets/{petID}/schedule": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["adoption"], "summary": "Schedule a visit (take the adopter slot)", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "petID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/transitionResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/pets/{petID}/remove-adopter": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["adoption"], "summary": "Cancel a scheduled visit (owner or adopter)", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "petID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/transitionResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/pets/{petID}/conclude": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["adoption"], "summary": "Conclude the adoption (owner only, terminal)", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "petID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/transitionResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errorResponse": {"type": "object", "properties": {"error": {"type": "string"}, "message": {"type": "string"}}},
        "registerRequest": {"type": "object", "properties": {
            "name": {"type": "string"}, "email": {"type": "string"}, "phone": {"type": "string"},
            "password": {"type": "string"}, "confirmpassword": {"type": "string"}}},
        "loginRequest": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "sessionResponse": {"type": "object", "properties": {"message": {"type": "string"}, "token": {"type": "string"}, "user_id": {"type": "string"}}},
        "contactResponse": {"type": "object", "properties": {
            "user_id": {"type": "string"}, "name": {"type": "string"}, "image": {"type": "string"}, "phone": {"type": "string"}}},
        "petRequest": {"type": "object", "properties": {
            "name": {"type": "string"}, "age": {"type": "integer"}, "weight": {"type": "number"},
            "color": {"type": "string"}, "images": {"type": "array", "items": {"type": "string"}}}},
        "petResponse": {"type": "object", "properties": {
            "id": {"type": "string"},
            "owner": {"$ref": "#/definitions/contactResponse"},
            "name": {"type": "string"}, "age": {"type": "integer"}, "weight": {"type": "number"}, "color": {"type": "string"},
            "images": {"type": "array", "items": {"type": "string"}},
            "available": {"type": "boolean"},
            "state": {"type": "string", "enum": ["listed", "visit_scheduled", "adopted"]},
            "adopter": {"$ref": "#/definitions/contactResponse"},
            "version": {"type": "integer"},
            "created_at": {"type": "string"}, "updated_at": {"type": "string"}}},
        "transitionResponse": {"type": "object", "properties": {
            "message": {"type": "string"}, "pet": {"$ref": "#/definitions/petResponse"}}}
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pet Adoption API",
	Description:      "Pet listings and the adoption lifecycle (schedule visit, remove adopter, conclude).",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
