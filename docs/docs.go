// Package docs registers the OpenAPI description of the simulator API with
// swag so gin-swagger can serve it under /swagger/.
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
        "/latest": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Simulator"],
                "summary": "Latest processed simulator command",
                "operationId": "getLatest",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.LatestResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/register": {
            "post": {
                "security": [{"SimulatorAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Simulator"],
                "summary": "Register a user",
                "operationId": "apiRegister",
                "parameters": [
                    {"type": "integer", "description": "Command sequence number", "name": "latest", "in": "query"},
                    {"description": "New user", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RegisterRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/msgs": {
            "get": {
                "security": [{"SimulatorAuth": []}],
                "produces": ["application/json"],
                "tags": ["Simulator"],
                "summary": "Public timeline",
                "operationId": "listMessages",
                "parameters": [
                    {"type": "integer", "description": "Command sequence number", "name": "latest", "in": "query"},
                    {"type": "integer", "default": 100, "description": "Maximum number of messages", "name": "no", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handlers.MessageDTO"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/msgs/{username}": {
            "get": {
                "security": [{"SimulatorAuth": []}],
                "produces": ["application/json"],
                "tags": ["Simulator"],
                "summary": "Messages of one user",
                "operationId": "listUserMessages",
                "parameters": [
                    {"type": "string", "description": "Author", "name": "username", "in": "path", "required": true},
                    {"type": "integer", "description": "Command sequence number", "name": "latest", "in": "query"},
                    {"type": "integer", "default": 100, "description": "Maximum number of messages", "name": "no", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handlers.MessageDTO"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"SimulatorAuth": []}],
                "consumes": ["application/json"],
                "tags": ["Simulator"],
                "summary": "Post a message as a user",
                "operationId": "postUserMessage",
                "parameters": [
                    {"type": "string", "description": "Author", "name": "username", "in": "path", "required": true},
                    {"type": "integer", "description": "Command sequence number", "name": "latest", "in": "query"},
                    {"description": "Message", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.PostMessageRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/fllws/{username}": {
            "get": {
                "security": [{"SimulatorAuth": []}],
                "produces": ["application/json"],
                "tags": ["Simulator"],
                "summary": "Users followed by a user",
                "operationId": "listFollows",
                "parameters": [
                    {"type": "string", "description": "Follower", "name": "username", "in": "path", "required": true},
                    {"type": "integer", "description": "Command sequence number", "name": "latest", "in": "query"},
                    {"type": "integer", "default": 100, "description": "Maximum number of users", "name": "no", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.FollowsResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"SimulatorAuth": []}],
                "consumes": ["application/json"],
                "tags": ["Simulator"],
                "summary": "Follow or unfollow a user",
                "operationId": "changeFollow",
                "parameters": [
                    {"type": "string", "description": "Follower", "name": "username", "in": "path", "required": true},
                    {"type": "integer", "description": "Command sequence number", "name": "latest", "in": "query"},
                    {"description": "Target", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.FollowRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/cleandb": {
            "post": {
                "security": [{"SimulatorAuth": []}],
                "tags": ["Simulator"],
                "summary": "Delete all users, messages, follows and the latest counter",
                "operationId": "cleanDB",
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "integer", "example": 404},
                "error_msg": {"type": "string", "example": "User not found"}
            }
        },
        "handlers.LatestResponse": {
            "type": "object",
            "properties": {"latest": {"type": "integer", "example": 42}}
        },
        "handlers.RegisterRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string", "example": "alice"},
                "email": {"type": "string", "example": "alice@example.com"},
                "pwd": {"type": "string", "example": "secret"}
            }
        },
        "handlers.MessageDTO": {
            "type": "object",
            "properties": {
                "content": {"type": "string", "example": "Hello, world!"},
                "pub_date": {"type": "integer", "example": 1700000000},
                "user": {"type": "string", "example": "alice"}
            }
        },
        "handlers.PostMessageRequest": {
            "type": "object",
            "properties": {"content": {"type": "string", "example": "Hello, world!"}}
        },
        "handlers.FollowRequest": {
            "type": "object",
            "properties": {
                "follow": {"type": "string", "example": "bob"},
                "unfollow": {"type": "string", "example": "carol"}
            }
        },
        "handlers.FollowsResponse": {
            "type": "object",
            "properties": {"follows": {"type": "array", "items": {"type": "string"}}}
        }
    },
    "securityDefinitions": {
        "SimulatorAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "MiniTwit Simulator API",
	Description:      "JSON API used by the MiniTwit load-testing simulator.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
